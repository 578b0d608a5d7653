/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package config_test

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/Snesnopic/chisel/internal/config"
)

func TestBindFlags_DefaultsMatchDocumentedValues(t *testing.T) {
	cmd := &cobra.Command{Use: "chisel"}
	v := viper.New()
	config.BindFlags(cmd, v)

	s := config.FromViper(v, []string{"a.png"})

	require.Equal(t, config.ModePipe, s.Mode)
	require.True(t, s.PreserveMetadata)
	require.False(t, s.VerifyChecksums)
	require.Equal(t, "info", s.LogLevel)
	require.GreaterOrEqual(t, s.Threads, 1)
}

func TestFromViper_CLIFlagOverridesDefault(t *testing.T) {
	cmd := &cobra.Command{Use: "chisel"}
	v := viper.New()
	config.BindFlags(cmd, v)
	require.NoError(t, cmd.Flags().Set("mode", "parallel"))
	require.NoError(t, cmd.Flags().Set("dry-run", "true"))

	s := config.FromViper(v, []string{"a.png"})

	require.Equal(t, config.ModeParallel, s.Mode)
	require.True(t, s.DryRun)
}

func TestFromViper_EnvVarOverridesDefaultWhenFlagUnset(t *testing.T) {
	t.Setenv("CHISEL_QUIET", "true")

	cmd := &cobra.Command{Use: "chisel"}
	v := viper.New()
	config.BindFlags(cmd, v)

	s := config.FromViper(v, []string{"a.png"})
	require.True(t, s.Quiet)
}

func TestFromViper_SingleDashInputIsPipeMode(t *testing.T) {
	cmd := &cobra.Command{Use: "chisel"}
	v := viper.New()
	config.BindFlags(cmd, v)

	s := config.FromViper(v, []string{"-"})
	require.True(t, s.IsPipe)

	s2 := config.FromViper(v, []string{"-", "a.png"})
	require.False(t, s2.IsPipe)
}
