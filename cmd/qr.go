package cmd

import (
	"fmt"
	"strconv"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/superbmd/bmd-cli/internal/core/services"
	"github.com/superbmd/bmd-cli/pkg/ui"
)

var (
	qrSize int
	qrOut  string
	qrCopy bool
)

// qrCmd represents the qr command
var qrCmd = &cobra.Command{
	Use:   "qr [id]",
	Short: "Render an asset's QR label",
	Long: `Render the printable QR label of an asset as a PNG. The encoded
payload carries the asset id, code and name.

With no id argument, pick the asset interactively. With --copy, the
JSON payload is also placed on the clipboard for pasting into label
templates.

Examples:
  bmd qr 42
  bmd qr 42 --size 512 --out label.png
  bmd qr --copy`,
	Args: cobra.MaximumNArgs(1),
	RunE: runQR,
}

func init() {
	qrCmd.Flags().IntVar(&qrSize, "size", 0, "Label size in pixels (default from config)")
	qrCmd.Flags().StringVar(&qrOut, "out", "", "Output path (default: qr_<code>.png)")
	qrCmd.Flags().BoolVar(&qrCopy, "copy", false, "Copy the label payload to the clipboard")
}

func runQR(cmd *cobra.Command, args []string) error {
	if err := requireLogin(); err != nil {
		return err
	}

	var id int
	if len(args) == 1 {
		parsed, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid asset id %q", args[0])
		}
		id = parsed
	} else {
		picked, err := pickAsset()
		if err != nil {
			return err
		}
		id = picked.ID
	}

	a, err := apiClient.Assets().Get(getContext(), id)
	if err != nil {
		fmt.Println(ui.FormatError("Failed to load asset"))
		return err
	}

	size := qrSize
	if size <= 0 {
		size = appConfig.QRSize
	}

	path := qrOut
	if path == "" {
		path = fmt.Sprintf("qr_%s.png", a.Code)
	}

	if err := services.WriteQRLabel(*a, size, path); err != nil {
		fmt.Println(ui.FormatError("Failed to render QR label"))
		return err
	}
	fmt.Println(ui.FormatSuccess("Wrote QR label to " + path))
	fmt.Println(ui.RenderKeyValue("Label", fmt.Sprintf("%s (%s)", a.Name, a.Code)))

	if qrCopy {
		payload, err := services.QRPayloadFor(*a).JSON()
		if err != nil {
			return err
		}
		// Clipboard access failing is not fatal.
		if err := clipboard.WriteAll(payload); err != nil {
			fmt.Println(ui.FormatMuted("(Clipboard access failed, please copy manually)"))
		} else {
			fmt.Println(ui.FormatInfo("Payload copied to clipboard"))
		}
	}
	return nil
}
