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

package registry_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Snesnopic/chisel/internal/processor"
	"github.com/Snesnopic/chisel/internal/registry"
)

type stubProcessor struct {
	name       string
	mimes      []string
	extensions []string
}

func (s *stubProcessor) Name() string                   { return s.name }
func (s *stubProcessor) SupportedMIMETypes() []string    { return s.mimes }
func (s *stubProcessor) SupportedExtensions() []string   { return s.extensions }
func (s *stubProcessor) CanRecompress() bool             { return true }
func (s *stubProcessor) CanExtractContents() bool        { return false }
func (s *stubProcessor) RawChecksum(string) (string, error) { return "", nil }
func (s *stubProcessor) RawEqual(string, string) (bool, error) {
	return true, nil
}
func (s *stubProcessor) Recompress(context.Context, string, string, bool) error { return nil }
func (s *stubProcessor) PrepareExtraction(context.Context, string) (*processor.ExtractionRecord, error) {
	return nil, nil
}
func (s *stubProcessor) FinalizeExtraction(context.Context, *processor.ExtractionRecord, processor.ContainerFormat) (string, error) {
	return "", nil
}

func TestRegistry_PreservesRegistrationOrder(t *testing.T) {
	first := &stubProcessor{name: "PngProcessor", mimes: []string{"image/png"}, extensions: []string{".png"}}
	second := &stubProcessor{name: "ZopfliPngProcessor", mimes: []string{"image/png"}, extensions: []string{".png"}}

	r := registry.New(first, second)

	got := r.FindByMIME("image/png")
	require.Len(t, got, 2)
	require.Same(t, first, got[0])
	require.Same(t, second, got[1])
}

func TestRegistry_ExtensionLookupIsCaseInsensitive(t *testing.T) {
	p := &stubProcessor{name: "PNG", mimes: []string{"image/png"}, extensions: []string{".PNG"}}
	r := registry.New(p)

	got := r.FindByExtension(".png")
	require.Len(t, got, 1)
	require.Same(t, p, got[0])
}

func TestRegistry_ResolveFallsBackToExtension(t *testing.T) {
	p := &stubProcessor{name: "Flac", mimes: []string{"audio/flac"}, extensions: []string{".flac"}}
	r := registry.New(p)

	require.Empty(t, r.Resolve("application/octet-stream", ".wav"))
	require.Len(t, r.Resolve("application/octet-stream", ".flac"), 1)
	require.Len(t, r.Resolve("audio/flac", ".flac"), 1)
}

func TestRegistry_NoMatchReturnsEmpty(t *testing.T) {
	r := registry.New()
	require.Empty(t, r.FindByMIME("text/plain"))
	require.Empty(t, r.FindByExtension(".txt"))
}

func TestRegistry_ConcurrentReadsAreSafe(t *testing.T) {
	p := &stubProcessor{name: "Zip", mimes: []string{"application/zip"}, extensions: []string{".zip"}}
	r := registry.New(p)

	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = r.FindByMIME("application/zip")
			_ = r.FindByExtension(".zip")
			_ = r.All()
		}()
	}
	wg.Wait()
}
