// playa - a low-level PDF object and content decoder
// Copyright (C) 2026  The playa authors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// End-to-end tests that open a synthetic PDF byte stream from scratch
// and drive it through the whole reading pipeline: xref/trailer,
// object resolution, the page tree, the content interpreter, and the
// font/CMap layer.
package playa_test

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/md5"
	"crypto/rc4"
	"encoding/hex"
	"fmt"
	"math"
	"strings"
	"testing"

	"playa.dev/playa"
	"playa.dev/playa/content"
	"playa.dev/playa/pagetree"
)

// buildPDF assembles a classic-xref PDF from object bodies numbered
// 1..len(objects), with /Root pointing at rootNum and trailerExtra
// appended inside the trailer dictionary (e.g. " /Encrypt 3 0 R").
func buildPDF(objects []string, rootNum int, trailerExtra string) []byte {
	var buf bytes.Buffer
	buf.WriteString("%PDF-1.7\n")

	offsets := make([]int, len(objects)+1)
	for i, body := range objects {
		num := i + 1
		offsets[num] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", num, body)
	}

	xrefOffset := buf.Len()
	n := len(objects) + 1
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", n)
	for i := 1; i < n; i++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root %d 0 R%s >>\nstartxref\n%d\n%%%%EOF",
		n, rootNum, trailerExtra, xrefOffset)
	return buf.Bytes()
}

func streamObj(extra, data string) string {
	return fmt.Sprintf("<< /Length %d%s >>\nstream\n%s\nendstream", len(data), extra, data)
}

func hexStr(b []byte) string {
	return "<" + hex.EncodeToString(b) + ">"
}

func firstTextRun(objs []content.Object) *content.TextRun {
	for _, o := range objs {
		if tr, ok := o.(*content.TextRun); ok {
			return tr
		}
	}
	return nil
}

func openAndRunPage(t *testing.T, data []byte, pageIndex int) (*playa.Document, []content.Object) {
	t.Helper()
	doc, err := playa.Open(playa.NewSource(data), nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	pages, perr := pagetree.Pages(doc)
	if perr != nil {
		t.Fatalf("pagetree.Pages: %v", perr)
	}
	if pageIndex >= len(pages) {
		t.Fatalf("page %d not found, only %d pages", pageIndex, len(pages))
	}
	page := pages[pageIndex]
	stm, ok := doc.GetStream(page.Dict["Contents"])
	if !ok {
		t.Fatalf("page %d has no content stream", pageIndex)
	}
	decoded, derr := doc.DecodeStream(stm)
	if derr != nil {
		t.Fatalf("DecodeStream: %v", derr)
	}
	objs, rerr := content.NewInterpreter(doc).Run(decoded, page.Resources)
	if rerr != nil {
		t.Fatalf("Interpreter.Run: %v", rerr)
	}
	return doc, objs
}

// TestScenarioHelloWorld covers spec.md §8 scenario 1: a 1-page PDF
// with "Hello, world!" set in Helvetica 12pt at (72, 720).
func TestScenarioHelloWorld(t *testing.T) {
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] " +
			"/Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>",
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
		streamObj("", "BT /F1 12 Tf 72 720 Td (Hello, world!) Tj ET"),
	}

	_, objs := openAndRunPage(t, buildPDF(objects, 1, ""), 0)

	run := firstTextRun(objs)
	if run == nil {
		t.Fatal("no text run emitted")
	}
	if run.Chars != "Hello, world!" {
		t.Errorf("Chars = %q, want %q", run.Chars, "Hello, world!")
	}
	if math.Abs(run.BBox.LLy-720) > 1 {
		t.Errorf("BBox.LLy = %v, want approximately 720", run.BBox.LLy)
	}
}

// padPasswd32 is the fixed 32-byte PDF password-padding string
// (ISO 32000-2 §7.6.4.3), reused here to build an independent
// encrypted-document fixture without calling into crypto.go's own
// encoding helpers.
var padPasswd32 = []byte{
	0x28, 0xBF, 0x4E, 0x5E, 0x4E, 0x75, 0x8A, 0x41,
	0x64, 0x00, 0x4E, 0x56, 0xFF, 0xFA, 0x01, 0x08,
	0x2E, 0x2E, 0x00, 0xB6, 0xD0, 0x68, 0x3E, 0x80,
	0x2F, 0x0C, 0xA9, 0xFE, 0x64, 0x53, 0x69, 0x7A,
}

// computeFileKeyR4 reimplements Algorithm 2 (file encryption key,
// R >= 3) for the empty user password, independently of crypto.go.
func computeFileKeyR4(id, o []byte, p int32) []byte {
	h := md5.New()
	h.Write(padPasswd32)
	h.Write(o)
	up := uint32(p)
	h.Write([]byte{byte(up), byte(up >> 8), byte(up >> 16), byte(up >> 24)})
	h.Write(id)
	key := h.Sum(nil)
	for i := 0; i < 50; i++ {
		h.Reset()
		h.Write(key[:16])
		key = h.Sum(key[:0])
	}
	return key[:16]
}

// computeUR4 reimplements Algorithm 4 (the /U value for R 3/4).
func computeUR4(key, id []byte) []byte {
	h := md5.New()
	h.Write(padPasswd32)
	h.Write(id)
	u := h.Sum(nil)
	c, _ := rc4.NewCipher(key)
	c.XORKeyStream(u, u)

	tmp := make([]byte, len(key))
	for i := byte(1); i <= 19; i++ {
		for j := range tmp {
			tmp[j] = key[j] ^ i
		}
		c, _ = rc4.NewCipher(tmp)
		c.XORKeyStream(u, u)
	}
	full := make([]byte, 32)
	copy(full, u)
	return full
}

// objectKeyAES128 reimplements Algorithm 1 for an AES-128 crypt
// filter: the file key salted with the object number/generation and
// the fixed "sAlT" suffix, truncated to 16 bytes.
func objectKeyAES128(fileKey []byte, num int, gen uint16) []byte {
	h := md5.New()
	h.Write(fileKey)
	h.Write([]byte{byte(num), byte(num >> 8), byte(num >> 16), byte(gen), byte(gen >> 8)})
	h.Write([]byte("sAlT"))
	return h.Sum(nil)[:16]
}

func aesCBCEncrypt(key, plaintext []byte) []byte {
	padLen := 16 - len(plaintext)%16
	padded := append(append([]byte(nil), plaintext...), bytes.Repeat([]byte{byte(padLen)}, padLen)...)
	iv := bytes.Repeat([]byte{0x42}, 16)
	block, _ := aes.NewCipher(key)
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)
	return append(append([]byte(nil), iv...), ciphertext...)
}

// TestScenarioEncryptedInfoTitle covers spec.md §8 scenario 2: a
// Standard-security-handler R4/AES-128 document with an empty user
// password and an /Info dictionary whose /Title decrypts to "Secret".
func TestScenarioEncryptedInfoTitle(t *testing.T) {
	id := bytes.Repeat([]byte{0x01}, 16)
	o := bytes.Repeat([]byte{0x00}, 32)
	p := int32(-4)

	fileKey := computeFileKeyR4(id, o, p)
	u := computeUR4(fileKey, id)

	const infoObjNum = 4
	objKey := objectKeyAES128(fileKey, infoObjNum, 0)
	titleCipher := aesCBCEncrypt(objKey, []byte("Secret"))

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [] /Count 0 >>",
		fmt.Sprintf("<< /Filter /Standard /V 4 /R 4 /O %s /U %s /P %d /Length 128 "+
			"/CF << /StdCF << /CFM /AESV2 /Length 16 >> >> /StmF /StdCF /StrF /StdCF >>",
			hexStr(o), hexStr(u), p),
		fmt.Sprintf("<< /Title %s >>", hexStr(titleCipher)),
	}
	trailerExtra := fmt.Sprintf(" /Encrypt 3 0 R /Info %d 0 R /ID [%s %s]", infoObjNum, hexStr(id), hexStr(id))

	doc, err := playa.Open(playa.NewSource(buildPDF(objects, 1, trailerExtra)), nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	info, ok := doc.Info()
	if !ok {
		t.Fatal("Info() ok = false")
	}
	if info["Title"] != "Secret" {
		t.Errorf("Info()[\"Title\"] = %q, want %q", info["Title"], "Secret")
	}
}

// TestScenarioReconstructionAfterCorruptStartxref covers spec.md §8
// scenario 3: a corrupted xref offset in startxref, but intact
// "N M obj" markers. Open must succeed and recover every page via the
// linear-scan reconstruction fallback.
func TestScenarioReconstructionAfterCorruptStartxref(t *testing.T) {
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R 4 0 R] /Count 2 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << >> /Contents 5 0 R >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << >> /Contents 6 0 R >>",
		streamObj("", "BT ET"),
		streamObj("", "BT ET"),
	}
	data := string(buildPDF(objects, 1, ""))

	// Corrupt the startxref offset while leaving the "N M obj" markers
	// and the trailer dictionary (needed by the reconstruction
	// fallback's trailer agglomeration) intact.
	const marker = "startxref\n"
	idx := strings.LastIndex(data, marker)
	if idx < 0 {
		t.Fatal("fixture has no startxref keyword")
	}
	lineStart := idx + len(marker)
	lineEnd := strings.IndexByte(data[lineStart:], '\n')
	if lineEnd < 0 {
		t.Fatal("malformed startxref fixture")
	}
	corrupted := data[:lineStart] + "9999999" + data[lineStart+lineEnd:]

	doc, err := playa.Open(playa.NewSource([]byte(corrupted)), nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	pages, perr := pagetree.Pages(doc)
	if perr != nil {
		t.Fatalf("pagetree.Pages: %v", perr)
	}
	if len(pages) != 2 {
		t.Errorf("len(pages) = %d, want 2", len(pages))
	}
}

// TestScenarioType0AdobeJapan1ToUnicode covers spec.md §8 scenario 4:
// a Type0 font with an embedded Adobe-Japan1-style encoding CMap and a
// /ToUnicode stream, where the two-byte code 0x82 0xA0 resolves to
// "あ".
func TestScenarioType0AdobeJapan1ToUnicode(t *testing.T) {
	encodingCMap := `/CIDInit /ProcSet findresource begin
12 dict begin
begincmap
/CMapName /Adobe-Japan1-Test def
/CMapType 1 def
/CIDSystemInfo << /Registry (Adobe) /Ordering (Japan1) /Supplement 1 >> def
1 begincodespacerange
<0000> <FFFF>
endcodespacerange
1 begincidrange
<82A0> <82A0> 1
endcidrange
endcmap
CMapName currentdict /CMap defineresource pop
end
end`

	toUnicode := `/CIDInit /ProcSet findresource begin
12 dict begin
begincmap
/CMapName /Adobe-Identity-UCS2 def
/CMapType 2 def
1 begincodespacerange
<0000> <FFFF>
endcodespacerange
1 beginbfrange
<82A0> <82A0> <3042>
endbfrange
endcmap
CMapName currentdict /CMap defineresource pop
end
end`

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] " +
			"/Resources << /Font << /F1 4 0 R >> >> /Contents 7 0 R >>",
		"<< /Type /Font /Subtype /Type0 /BaseFont /MS-Mincho " +
			"/Encoding 5 0 R /DescendantFonts [6 0 R] /ToUnicode 8 0 R >>",
		streamObj("", encodingCMap),
		"<< /Type /Font /Subtype /CIDFontType0 /BaseFont /MS-Mincho " +
			"/CIDSystemInfo << /Registry (Adobe) /Ordering (Japan1) /Supplement 1 >> /DW 1000 >>",
		streamObj("", "BT /F1 12 Tf 72 700 Td <82A0> Tj ET"),
		streamObj("", toUnicode),
	}

	_, objs := openAndRunPage(t, buildPDF(objects, 1, ""), 0)

	run := firstTextRun(objs)
	if run == nil {
		t.Fatal("no text run emitted")
	}
	if run.Chars != "あ" {
		t.Errorf("Chars = %q, want %q", run.Chars, "あ")
	}
}

// TestScenarioFormXObjectMatrix covers spec.md §8 scenario 5: a Form
// XObject with its own CTM [0.5 0 0 0.5 100 100] drawing text "X" at
// (0, 0), whose emitted glyph lands at device-space (100, 100) with
// its effective font size halved.
func TestScenarioFormXObjectMatrix(t *testing.T) {
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] " +
			"/Resources << /Font << /F1 4 0 R >> /XObject << /Fm1 6 0 R >> >> /Contents 5 0 R >>",
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
		streamObj("", "/Fm1 Do"),
		streamObj(" /Type /XObject /Subtype /Form /Matrix [0.5 0 0 0.5 100 100] "+
			"/BBox [0 0 100 100] /Resources << /Font << /F1 4 0 R >> >>",
			"BT /F1 12 Tf 0 0 Td (X) Tj ET"),
	}

	_, objs := openAndRunPage(t, buildPDF(objects, 1, ""), 0)

	run := firstTextRun(objs)
	if run == nil {
		t.Fatal("no text run emitted")
	}
	if len(run.Glyphs) != 1 {
		t.Fatalf("len(Glyphs) = %d, want 1", len(run.Glyphs))
	}
	g := run.Glyphs[0]
	if math.Abs(g.Matrix[0]-6) > 1e-9 {
		t.Errorf("effective font size (Matrix[0]) = %v, want 6 (12 halved)", g.Matrix[0])
	}
	if math.Abs(g.BBox.LLx-100) > 1e-9 || math.Abs(g.BBox.LLy-100) > 1e-9 {
		t.Errorf("BBox origin = (%v, %v), want (100, 100)", g.BBox.LLx, g.BBox.LLy)
	}
}

// TestScenarioNestedMarkedContent covers spec.md §8 scenario 6: nested
// marked content where the inner frame reports /Artifact with no MCID
// and the content between the inner EMC and the outer EMC reports
// MCID 3.
func TestScenarioNestedMarkedContent(t *testing.T) {
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << >> /Contents 5 0 R >>",
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
		streamObj("", "/Span << /MCID 3 >> BDC /Artifact BMC q Q EMC q Q EMC"),
	}

	_, objs := openAndRunPage(t, buildPDF(objects, 1, ""), 0)

	var depth int
	var sawInnerArtifact, sawOuterMCID3 bool
	for _, o := range objs {
		switch v := o.(type) {
		case *content.MarkedContentStart:
			depth++
			if depth == 1 && (v.Tag != "Span" || !v.HasMCID || v.MCID != 3) {
				t.Errorf("outer frame = %+v, want tag Span with MCID 3", v)
			}
			if depth == 2 {
				if v.Tag != "Artifact" || v.HasMCID {
					t.Errorf("inner frame = %+v, want tag Artifact, no MCID", v)
				}
				sawInnerArtifact = true
			}
		case *content.MarkedContentEnd:
			depth--
			if depth == 1 {
				sawOuterMCID3 = true
			}
		}
	}
	if !sawInnerArtifact {
		t.Error("inner /Artifact frame never observed")
	}
	if !sawOuterMCID3 {
		t.Error("never returned to the outer MCID-3 frame after the inner EMC")
	}
}
