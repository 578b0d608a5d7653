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

package chiselerr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Snesnopic/chisel/internal/chiselerr"
)

func TestNew_CarriesCodeAndMessage(t *testing.T) {
	err := chiselerr.New(chiselerr.Unsupported, "no processor for text/plain")

	require.Equal(t, chiselerr.Unsupported, err.Code())
	require.Contains(t, err.Error(), "no processor for text/plain")
}

func TestWrap_UnwrapsToCause(t *testing.T) {
	cause := errors.New("rename: access denied")
	err := chiselerr.Wrap(chiselerr.ReplacementFailure, "Rename failed", cause)

	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "access denied")
}

func TestIs_MatchesCodeThroughWrappedChain(t *testing.T) {
	inner := chiselerr.New(chiselerr.CodecFailure, "zero-byte output")
	outer := fmt.Errorf("pipe stage 2: %w", inner)

	require.True(t, chiselerr.Is(outer, chiselerr.CodecFailure))
	require.False(t, chiselerr.Is(outer, chiselerr.AcceptanceFailure))
}

func TestCode_StringIsHumanReadable(t *testing.T) {
	require.Equal(t, "acceptance failure", chiselerr.AcceptanceFailure.String())
	require.Equal(t, "unknown", chiselerr.Unknown.String())
}
