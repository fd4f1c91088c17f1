// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"context"
	"io"
	"log/slog"
	"os"

	ethlog "github.com/ethereum/go-ethereum/log"
	"github.com/mattn/go-isatty"
)

// HandlerOptions selects the output format and level of a handler.
type HandlerOptions struct {
	// Verbosity follows the legacy 0-9 scale: 0 crit, 3 info, 4 debug, 5+ trace.
	Verbosity int
	JSON      bool
	// Color forces colored terminal output. When nil it is detected from the writer.
	Color *bool
}

// NewHandler returns a terminal or JSON handler writing to w.
// The returned level var can be used to change verbosity at runtime.
func NewHandler(w io.Writer, opts HandlerOptions) (slog.Handler, *slog.LevelVar) {
	level := new(slog.LevelVar)
	level.Set(ethlog.FromLegacyLevel(opts.Verbosity))

	// the inner handlers pass everything; filtering is done against level
	if opts.JSON {
		return &levelHandler{ethlog.JSONHandlerWithLevel(w, LevelTrace), level}, level
	}

	useColor := false
	if opts.Color != nil {
		useColor = *opts.Color
	} else if f, ok := w.(*os.File); ok {
		useColor = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &levelHandler{ethlog.NewTerminalHandlerWithLevel(w, LevelTrace, useColor), level}, level
}

// levelHandler drops records below a level that may change at runtime.
type levelHandler struct {
	inner slog.Handler
	level *slog.LevelVar
}

func (h *levelHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= h.level.Level() && h.inner.Enabled(ctx, level)
}

func (h *levelHandler) Handle(ctx context.Context, r slog.Record) error {
	return h.inner.Handle(ctx, r)
}

func (h *levelHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &levelHandler{h.inner.WithAttrs(attrs), h.level}
}

func (h *levelHandler) WithGroup(name string) slog.Handler {
	return &levelHandler{h.inner.WithGroup(name), h.level}
}

// DiscardHandler returns a no-op handler.
func DiscardHandler() slog.Handler {
	return ethlog.DiscardHandler()
}
