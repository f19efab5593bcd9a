package cmd

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/superbmd/bmd-cli/internal/core/domain"
	"github.com/superbmd/bmd-cli/internal/core/services"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Live-updating asset list",
	Long: `Show the asset list full-screen and refresh it periodically.
The refresh interval comes from the configuration. The same filters as
'assets list' apply.

Keys:
  ←/→ or h/l   Previous / next page
  r            Refresh now
  q/Esc        Quit`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&assetSearch, "search", "", "Search by name or code")
	watchCmd.Flags().IntVar(&assetLocationID, "location", 0, "Filter by location id")
	watchCmd.Flags().StringVar(&assetCondition, "condition", "", "Filter by condition")
}

func runWatch(cmd *cobra.Command, args []string) error {
	if err := requireLogin(); err != nil {
		return err
	}

	filter, err := buildAssetFilter()
	if err != nil {
		return err
	}

	view, err := newWatchView(filter)
	if err != nil {
		return err
	}
	return view.Run()
}

// watchView is the tcell screen around a live asset list store.
type watchView struct {
	screen tcell.Screen
	store  *services.ListStore[domain.Asset, domain.AssetFilter]
	width  int
	height int
	quit   chan struct{}
}

func newWatchView(filter domain.AssetFilter) (*watchView, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize screen: %w", err)
	}

	v := &watchView{screen: screen, quit: make(chan struct{})}
	v.store = services.NewListStore(apiClient.Assets().List, appConfig.PageSize, func() {
		// Wake the event loop so the new state gets drawn.
		_ = screen.PostEvent(tcell.NewEventInterrupt(nil))
	})
	primeAssetStore(getContext(), v.store, filter)
	return v, nil
}

// primeAssetStore issues a fresh store's first fetch. A zero filter
// equals the store's initial state, so SetFilter alone would no-op and
// the list would stay empty until something else triggered a fetch.
func primeAssetStore(ctx context.Context, store *services.ListStore[domain.Asset, domain.AssetFilter], filter domain.AssetFilter) {
	if filter != (domain.AssetFilter{}) {
		store.SetFilter(ctx, filter)
	} else {
		store.Refetch(ctx)
	}
}

func (v *watchView) Run() error {
	defer v.screen.Fini()

	interval := time.Duration(appConfig.WatchRefreshSeconds) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	go func() {
		for {
			select {
			case <-ticker.C:
				v.store.Refetch(getContext())
			case <-v.quit:
				return
			}
		}
	}()

	v.width, v.height = v.screen.Size()
	v.render()

	for {
		ev := v.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			v.width, v.height = v.screen.Size()
			v.screen.Sync()
			v.render()
		case *tcell.EventInterrupt:
			v.render()
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
				close(v.quit)
				return nil
			}
			v.handleKeyPress(ev)
		}
	}
}

func (v *watchView) handleKeyPress(ev *tcell.EventKey) {
	switch {
	case ev.Key() == tcell.KeyLeft || ev.Rune() == 'h':
		if v.store.Page() > 1 {
			go v.store.SetPage(getContext(), v.store.Page()-1)
		}
	case ev.Key() == tcell.KeyRight || ev.Rune() == 'l':
		if v.store.Page() < v.store.Pagination().TotalPages {
			go v.store.SetPage(getContext(), v.store.Page()+1)
		}
	case ev.Rune() == 'r':
		go v.store.Refetch(getContext())
	}
}

func (v *watchView) render() {
	v.screen.Clear()

	titleStyle := tcell.StyleDefault.Bold(true).Foreground(tcell.ColorPurple)
	mutedStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)
	headerStyle := tcell.StyleDefault.Bold(true).Foreground(tcell.ColorGreen)

	y := 0
	title := "SUPER BMD - Live Assets"
	if v.store.Loading() {
		title += "  (refreshing...)"
	}
	v.drawText(0, y, title, titleStyle)
	y += 2

	if err := v.store.Err(); err != nil {
		// Stale items stay on screen under the error banner.
		v.drawText(0, y, "! "+err.Error(), tcell.StyleDefault.Foreground(tcell.ColorRed))
		y += 2
	}

	v.drawText(0, y, fmt.Sprintf("%-5s %-30s %-14s %-13s %-20s", "ID", "NAME", "CODE", "CONDITION", "LOCATION"), headerStyle)
	y++
	for _, a := range v.store.Items() {
		if y >= v.height-3 {
			break
		}
		line := fmt.Sprintf("%-5s %-30s %-14s %-13s %-20s",
			strconv.Itoa(a.ID),
			truncate(a.Name, 30),
			truncate(a.Code, 14),
			string(a.Condition),
			truncate(a.LocationName(), 20),
		)
		v.drawText(0, y, line, tcell.StyleDefault)
		y++
	}

	pg := v.store.Pagination()
	first, last := pg.Showing()
	footerY := v.height - 2
	v.drawText(0, footerY, fmt.Sprintf("Showing %d-%d of %d  page %d/%d", first, last, pg.TotalItems, pg.CurrentPage, pg.TotalPages), mutedStyle)
	v.drawText(0, footerY+1, "[←→/hl] Page  [r] Refresh  [q/Esc] Quit", mutedStyle)

	v.screen.Show()
}

func (v *watchView) drawText(x, y int, text string, style tcell.Style) {
	for i, r := range []rune(text) {
		if x+i >= v.width {
			break
		}
		v.screen.SetContent(x+i, y, r, nil, style)
	}
}
