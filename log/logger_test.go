// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithContextFollowsRoot(t *testing.T) {
	prev := Root()
	defer SetDefault(prev)

	logger := WithContext("pkg", "test")

	var buf bytes.Buffer
	h, _ := NewHandler(&buf, HandlerOptions{Verbosity: 3, JSON: true})
	SetDefault(NewLogger(h))

	logger.Info("hello", "k", 1)
	logger.Debug("hidden")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "hello", rec["msg"])
	assert.Equal(t, "test", rec["pkg"])
	assert.Equal(t, float64(1), rec["k"])
}

func TestLevelVar(t *testing.T) {
	var buf bytes.Buffer
	noColor := false
	h, level := NewHandler(&buf, HandlerOptions{Verbosity: 2, Color: &noColor})
	l := NewLogger(h)

	l.Info("dropped")
	assert.Zero(t, buf.Len())

	level.Set(LevelInfo)
	l.Info("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestLevelVar_JSONContextLoggers(t *testing.T) {
	var buf bytes.Buffer
	h, level := NewHandler(&buf, HandlerOptions{Verbosity: 3, JSON: true})
	l := NewLogger(h).With("pkg", "state")

	l.Debug("dropped")
	assert.Zero(t, buf.Len())

	level.Set(LevelDebug)
	l.Debug("kept")
	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "kept", rec["msg"])
	assert.Equal(t, "state", rec["pkg"])

	buf.Reset()
	level.Set(LevelError)
	l.Warn("dropped again")
	assert.Zero(t, buf.Len())
	assert.False(t, l.Enabled(context.Background(), LevelWarn))
	assert.True(t, l.Enabled(context.Background(), LevelCrit))
}

func TestWithAppendsContext(t *testing.T) {
	prev := Root()
	defer SetDefault(prev)

	var buf bytes.Buffer
	h, _ := NewHandler(&buf, HandlerOptions{Verbosity: 3, JSON: true})
	SetDefault(NewLogger(h))

	WithContext("pkg", "a").With("sub", "b").Warn("w")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "a", rec["pkg"])
	assert.Equal(t, "b", rec["sub"])
}
