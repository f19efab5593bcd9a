package cmd

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/superbmd/bmd-cli/internal/core/domain"
	"github.com/superbmd/bmd-cli/internal/core/services"
	"github.com/superbmd/bmd-cli/pkg/ui"
)

var importWatch bool

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import <file.csv|dir>",
	Short: "Bulk-create assets from CSV",
	Long: `Create assets from a CSV file, or from every CSV in a directory.
The header row names the wire fields: nama_barang, kode_barang, kondisi,
id_lokasi, penanggung_jawab, tanggal_masuk. Rows failing validation are
reported and skipped; valid rows are submitted one by one and the server
stays the final validator.

With --watch, changed or newly dropped CSV files are re-imported. Bursts
of file events settle before a run starts, so an editor writing in
chunks triggers one import, not several.

Examples:
  bmd import assets.csv
  bmd import assets.csv --watch
  bmd import ./incoming --watch`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVar(&importWatch, "watch", false, "Re-import whenever a CSV changes or appears")
}

func runImport(cmd *cobra.Command, args []string) error {
	if err := requireMutationRole(); err != nil {
		return err
	}

	path := args[0]
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot import %s: %w", path, err)
	}

	if !importWatch {
		if info.IsDir() {
			return importDir(path)
		}
		return importFile(path)
	}
	return watchImports(path, info.IsDir())
}

// importDir imports every *.csv directly inside dir, in name order.
func importDir(dir string) error {
	files, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Println(ui.FormatWarning("No CSV files in " + dir))
		return nil
	}
	sort.Strings(files)
	for _, f := range files {
		fmt.Println(ui.FormatInfo("Importing " + f))
		if err := importFile(f); err != nil {
			fmt.Println(ui.FormatError(err.Error()))
		}
	}
	return nil
}

// watchImports re-imports on file events. The watch is always on a
// directory: editors replace files on save, which would drop a watch
// placed on the file itself.
func watchImports(path string, isDir bool) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start file watcher: %w", err)
	}
	defer watcher.Close()

	watchDir := path
	if !isDir {
		watchDir = filepath.Dir(path)
	}
	if err := watcher.Add(watchDir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", watchDir, err)
	}

	runInitial := importFile
	if isDir {
		runInitial = importDir
	}
	if err := runInitial(path); err != nil {
		fmt.Println(ui.FormatError(err.Error()))
	}
	fmt.Println(ui.FormatInfo("Watching " + path + " (Ctrl+C to stop)"))

	// Events accumulate into a pending set so a burst touching several
	// files still imports each of them exactly once after the settle.
	var mu sync.Mutex
	pending := make(map[string]struct{})

	settle := time.Duration(appConfig.ImportSettleMS) * time.Millisecond
	debouncer := services.NewDebouncer(settle, func(string) {
		mu.Lock()
		files := make([]string, 0, len(pending))
		for f := range pending {
			files = append(files, f)
		}
		pending = make(map[string]struct{})
		mu.Unlock()

		sort.Strings(files)
		for _, f := range files {
			fmt.Println(ui.FormatInfo("Importing " + f))
			if err := importFile(f); err != nil {
				fmt.Println(ui.FormatError(err.Error()))
			}
		}
		flushNotifications()
	})
	defer debouncer.Stop()

	wanted := func(name string) bool {
		if isDir {
			return strings.EqualFold(filepath.Ext(name), ".csv")
		}
		return filepath.Clean(name) == filepath.Clean(path)
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !wanted(event.Name) {
				continue
			}
			if event.Has(fsnotify.Create) || event.Has(fsnotify.Write) || event.Has(fsnotify.Rename) {
				mu.Lock()
				pending[event.Name] = struct{}{}
				mu.Unlock()
				debouncer.Set(event.Name)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Println(ui.FormatError("Watcher error: " + err.Error()))
		case <-sigs:
			fmt.Println()
			fmt.Println(ui.FormatInfo("Stopped watching"))
			return nil
		}
	}
}

func importFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("failed to read CSV header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"nama_barang", "kode_barang", "kondisi", "id_lokasi", "penanggung_jawab", "tanggal_masuk"} {
		if _, ok := index[required]; !ok {
			return fmt.Errorf("CSV is missing required column %q", required)
		}
	}

	field := func(record []string, key string) string {
		i := index[key]
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	ctx := getContext()
	var created, failed int
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read CSV row %d: %w", line, err)
		}

		in := domain.AssetInput{
			Name:             field(record, "nama_barang"),
			Code:             field(record, "kode_barang"),
			ResponsibleParty: field(record, "penanggung_jawab"),
			EntryDate:        field(record, "tanggal_masuk"),
		}
		if raw := field(record, "kondisi"); raw != "" {
			cond, err := domain.ParseCondition(raw)
			if err != nil {
				fmt.Println(ui.FormatWarning(fmt.Sprintf("Row %d skipped: %v", line, err)))
				failed++
				continue
			}
			in.Condition = cond
		}
		if raw := field(record, "id_lokasi"); raw != "" {
			locID, err := strconv.Atoi(raw)
			if err != nil {
				fmt.Println(ui.FormatWarning(fmt.Sprintf("Row %d skipped: invalid id_lokasi %q", line, raw)))
				failed++
				continue
			}
			in.LocationID = locID
		}
		if err := in.Validate(); err != nil {
			fmt.Println(ui.FormatWarning(fmt.Sprintf("Row %d skipped: %v", line, err)))
			failed++
			continue
		}

		if _, err := apiClient.Assets().Create(ctx, in); err != nil {
			fmt.Println(ui.FormatWarning(fmt.Sprintf("Row %d failed: %v", line, err)))
			failed++
			continue
		}
		created++
	}

	if failed > 0 {
		fmt.Println(ui.FormatWarning(fmt.Sprintf("Imported %d assets, %d rows skipped", created, failed)))
	} else {
		fmt.Println(ui.FormatSuccess(fmt.Sprintf("Imported %d assets", created)))
	}
	return nil
}
