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

package processor

import "strings"

// ContainerFormat is a closed enumeration of known container formats. Each
// tag carries two predicates (Readable, Writable) describing whether a
// processor in this run can unpack / repack it, plus a canonical lowercase
// string and primary file extension.
type ContainerFormat int

const (
	Unknown ContainerFormat = iota
	Zip
	SevenZip
	Tar
	GZip
	BZip2
	Xz
	Rar
	Wim
	Pdf
	Docx
	Xlsx
	Pptx
	Ods
	Odt
	Odp
	Odg
	Odf
	Epub
	Cbz
	Cbt
	Jar
	Xpi
	Ora
	Dwfx
	Xps
	Apk
	Iso
	Cpio
	Ar
	Zstd
)

type containerInfo struct {
	name      string
	extension string
	readable  bool
	writable  bool
}

// formatTable is the single source of truth for the string/extension
// mapping and the readable/writable predicates; ordering mirrors
// original_source/libchisel/include/file_type.hpp's ContainerFormat enum.
var formatTable = map[ContainerFormat]containerInfo{
	Unknown:  {"unknown", "", false, false},
	Zip:      {"zip", ".zip", true, true},
	SevenZip: {"7z", ".7z", true, false},
	Tar:      {"tar", ".tar", true, true},
	GZip:     {"gzip", ".gz", true, true},
	BZip2:    {"bzip2", ".bz2", true, true},
	Xz:       {"xz", ".xz", true, true},
	Rar:      {"rar", ".rar", true, false},
	Wim:      {"wim", ".wim", true, false},
	Pdf:      {"pdf", ".pdf", true, true},
	Docx:     {"docx", ".docx", true, true},
	Xlsx:     {"xlsx", ".xlsx", true, true},
	Pptx:     {"pptx", ".pptx", true, true},
	Ods:      {"ods", ".ods", true, true},
	Odt:      {"odt", ".odt", true, true},
	Odp:      {"odp", ".odp", true, true},
	Odg:      {"odg", ".odg", true, true},
	Odf:      {"odf", ".odf", true, true},
	Epub:     {"epub", ".epub", true, true},
	Cbz:      {"cbz", ".cbz", true, true},
	Cbt:      {"cbt", ".cbt", true, true},
	Jar:      {"jar", ".jar", true, true},
	Xpi:      {"xpi", ".xpi", true, true},
	Ora:      {"ora", ".ora", true, true},
	Dwfx:     {"dwfx", ".dwfx", true, true},
	Xps:      {"xps", ".xps", true, true},
	Apk:      {"apk", ".apk", true, true},
	Iso:      {"iso", ".iso", true, true},
	Cpio:     {"cpio", ".cpio", true, true},
	Ar:       {"ar", ".ar", true, true},
	Zstd:     {"zstd", ".zst", true, true},
}

// Readable reports whether a processor in this registry can unpack this
// container tag.
func (f ContainerFormat) Readable() bool {
	return formatTable[f].readable
}

// Writable reports whether a processor in this registry can repack this
// container tag.
func (f ContainerFormat) Writable() bool {
	return formatTable[f].writable
}

// String returns the canonical lowercase name of the format.
func (f ContainerFormat) String() string {
	if info, ok := formatTable[f]; ok {
		return info.name
	}
	return "unknown"
}

// Extension returns the primary file extension (dot-prefixed) for the
// format, or "" for Unknown.
func (f ContainerFormat) Extension() string {
	return formatTable[f].extension
}

// ParseContainerFormat converts a canonical lowercase string (as produced
// by String) back into a ContainerFormat, falling back to Unknown.
func ParseContainerFormat(s string) ContainerFormat {
	s = strings.ToLower(strings.TrimSpace(s))
	for f, info := range formatTable {
		if info.name == s {
			return f
		}
	}
	return Unknown
}
