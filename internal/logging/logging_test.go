/*
 * logging_test.go, part of somcyp.
 *
 * Copyright 2024 The somcyp authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/md-studio/somcyp/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(Te *testing.T) {
	assert.Equal(Te, zapcore.DebugLevel, ParseLevel("debug"))
	assert.Equal(Te, zapcore.WarnLevel, ParseLevel("WARN"))
	assert.Equal(Te, zapcore.InfoLevel, ParseLevel("verbose"))
}

func TestJSONLogger(Te *testing.T) {
	path := filepath.Join(Te.TempDir(), "log.json")
	l, err := NewWithPaths(config.LogConfig{Level: "warn", Format: "json"}, []string{path})
	require.NoError(Te, err)
	l.Info("hidden")
	l.Warn("clamped", zap.Int("atoms", 2))
	_ = l.Sync()
	b, err := os.ReadFile(path)
	require.NoError(Te, err)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	require.Len(Te, lines, 1)
	var entry map[string]interface{}
	require.NoError(Te, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(Te, "clamped", entry["msg"])
	assert.Equal(Te, 2.0, entry["atoms"])
	assert.Contains(Te, entry, "ts")
}

func TestConsoleLogger(Te *testing.T) {
	l, err := New(config.LogConfig{Level: "debug", Format: "console"})
	require.NoError(Te, err)
	assert.True(Te, l.Core().Enabled(zapcore.DebugLevel))
}
