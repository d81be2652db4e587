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

package playa

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/md5"
	"crypto/rc4"
	"crypto/sha256"
	"crypto/sha512"
	"errors"
	"hash"

	"github.com/xdg-go/stringprep"
)

// cipherKind distinguishes the stream cipher used by a crypt filter.
type cipherKind int

const (
	cipherRC4 cipherKind = iota
	cipherAES128
	cipherAES256
)

// decryptor decrypts strings and stream payloads using the Standard
// Security Handler's per-object key derivation. It holds the
// already-authenticated file encryption key; construction (via
// openDecryptor) is where password authentication happens.
type decryptor struct {
	handler *stdSecHandler
	strCF   cipherKind
	stmCF   cipherKind
	strNone bool // /StrF names Identity: strings pass through unchanged
	stmNone bool
}

// openDecryptor parses an /Encrypt dictionary and authenticates
// against it using the empty user password (the common case for
// documents that restrict printing/editing but not viewing) followed
// by any passwords returned from tryPasswords, in order. It returns
// an error if no supplied password authenticates.
func openDecryptor(enc Dict, id []byte, tryPasswords []string) (*decryptor, *Error) {
	filter, _ := enc["Filter"].(Name)
	if filter != "" && filter != "Standard" {
		return nil, errAt(KindCrypt, 0, "unsupported security handler %q", filter)
	}

	v, _ := enc["V"].(Integer)

	var keyBits int
	strCF := cipherRC4
	stmCF := cipherRC4
	strIsIdentity := false
	stmIsIdentity := false

	switch v {
	case 1:
		keyBits = 40
	case 2:
		keyBits = 40
		if l, ok := enc["Length"].(Integer); ok {
			keyBits = int(l)
		}
	case 4, 5:
		cfDict, _ := enc["CF"].(Dict)
		stmName, _ := enc["StmF"].(Name)
		strName, _ := enc["StrF"].(Name)
		stmIsIdentity = stmName == "Identity"
		strIsIdentity = strName == "Identity"
		var err error
		stmCF, keyBits, err = lookupCryptFilter(stmName, cfDict)
		if err != nil {
			return nil, errAt(KindCrypt, 0, "StmF: %v", err)
		}
		strCF, _, err = lookupCryptFilter(strName, cfDict)
		if err != nil {
			return nil, errAt(KindCrypt, 0, "StrF: %v", err)
		}
	default:
		return nil, errAt(KindCrypt, 0, "unsupported Encrypt.V=%d", v)
	}
	if keyBits < 40 || keyBits > 256 || keyBits%8 != 0 {
		return nil, errAt(KindCrypt, 0, "invalid key length %d", keyBits)
	}

	sec, serr := openStdSecHandler(enc, keyBits/8, id)
	if serr != nil {
		return nil, errAt(KindCrypt, 0, "%v", serr)
	}

	passwords := append([]string{""}, tryPasswords...)
	authenticated := false
	for _, pw := range passwords {
		if sec.authenticate(pw) {
			authenticated = true
			break
		}
	}
	if !authenticated {
		return nil, errAt(KindCrypt, 0, "no supplied password decrypts this document")
	}

	return &decryptor{
		handler: sec,
		strCF:   strCF,
		stmCF:   stmCF,
		strNone: strIsIdentity,
		stmNone: stmIsIdentity,
	}, nil
}

func lookupCryptFilter(name Name, cf Dict) (cipherKind, int, error) {
	if name == "" || name == "Identity" {
		return cipherRC4, 40, nil
	}
	if cf == nil {
		return 0, 0, errors.New("missing CF dictionary")
	}
	d, ok := cf[name].(Dict)
	if !ok {
		return 0, 0, errors.New("missing crypt filter " + string(name))
	}
	cfm, _ := d["CFM"].(Name)
	switch cfm {
	case "V2":
		return cipherRC4, 128, nil
	case "AESV2":
		return cipherAES128, 128, nil
	case "AESV3":
		return cipherAES256, 256, nil
	}
	return 0, 0, errors.New("unsupported CFM " + string(cfm))
}

// DecryptString decrypts a literal/hex string value read from object
// number num, generation gen.
func (d *decryptor) DecryptString(num int, gen uint16, s []byte) ([]byte, *Error) {
	if d == nil || d.strNone {
		return s, nil
	}
	return d.decrypt(d.strCF, num, gen, s)
}

// DecryptStream decrypts a stream's raw bytes, read from object
// number num, generation gen, before filter decoding runs.
func (d *decryptor) DecryptStream(num int, gen uint16, raw []byte) ([]byte, *Error) {
	if d == nil || d.stmNone {
		return raw, nil
	}
	return d.decrypt(d.stmCF, num, gen, raw)
}

func (d *decryptor) decrypt(ck cipherKind, num int, gen uint16, buf []byte) ([]byte, *Error) {
	key := d.handler.keyForObject(ck, num, gen)

	switch ck {
	case cipherRC4:
		out := make([]byte, len(buf))
		c, err := rc4.NewCipher(key)
		if err != nil {
			return nil, errAt(KindCrypt, 0, "%v", err)
		}
		c.XORKeyStream(out, buf)
		return out, nil

	case cipherAES128, cipherAES256:
		if len(buf) < 32 || len(buf)%16 != 0 {
			if len(buf) < 16 {
				return nil, errAt(KindCrypt, 0, "truncated AES-encrypted data")
			}
		}
		iv := buf[:16]
		body := append([]byte(nil), buf[16:]...)
		if len(body) == 0 || len(body)%16 != 0 {
			return nil, errAt(KindCrypt, 0, "AES-encrypted data is not block aligned")
		}
		c, err := aes.NewCipher(key)
		if err != nil {
			return nil, errAt(KindCrypt, 0, "%v", err)
		}
		cipher.NewCBCDecrypter(c, iv).CryptBlocks(body, body)

		nPad := int(body[len(body)-1])
		if nPad < 1 || nPad > 16 || nPad > len(body) {
			return nil, errAt(KindCrypt, 0, "invalid PKCS#7 padding")
		}
		return body[:len(body)-nPad], nil

	default:
		return nil, errAt(KindCrypt, 0, "unknown cipher")
	}
}

// stdSecHandler implements the PDF Standard Security Handler
// (ISO 32000-2 §7.6.4), restricted to authentication and key
// derivation for reading an already-encrypted document.
type stdSecHandler struct {
	r        int
	id       []byte
	o, u     []byte
	oe, ue   []byte
	perms    []byte
	p        uint32
	keyBytes int

	unencryptedMetadata bool

	key []byte
}

func openStdSecHandler(enc Dict, keyBytes int, id []byte) (*stdSecHandler, error) {
	r, ok := enc["R"].(Integer)
	if !ok || r < 2 || r == 5 || r > 6 {
		return nil, errors.New("invalid Encrypt.R")
	}
	ouLen := 32
	if r == 6 {
		ouLen = 48
	}

	o, ok := enc["O"].(String)
	if !ok || len(o) != ouLen {
		return nil, errors.New("invalid Encrypt.O")
	}
	u, ok := enc["U"].(String)
	if !ok || len(u) != ouLen {
		return nil, errors.New("invalid Encrypt.U")
	}
	p, ok := enc["P"].(Integer)
	if !ok {
		return nil, errors.New("invalid Encrypt.P")
	}

	emd := true
	if b, ok := enc["EncryptMetadata"].(Bool); ok {
		emd = bool(b)
	}

	sec := &stdSecHandler{
		r:                   int(r),
		id:                  id,
		o:                   []byte(o),
		u:                   []byte(u),
		p:                   uint32(p),
		keyBytes:            keyBytes,
		unencryptedMetadata: !emd,
	}

	if r == 6 {
		oe, ok := enc["OE"].(String)
		if !ok || len(oe) != 32 {
			return nil, errors.New("invalid Encrypt.OE")
		}
		ue, ok := enc["UE"].(String)
		if !ok || len(ue) != 32 {
			return nil, errors.New("invalid Encrypt.UE")
		}
		perms, ok := enc["Perms"].(String)
		if !ok || len(perms) != 16 {
			return nil, errors.New("invalid Encrypt.Perms")
		}
		sec.oe, sec.ue, sec.perms = []byte(oe), []byte(ue), []byte(perms)
	}

	return sec, nil
}

// authenticate tries pw as both the user and owner password and, on
// success, stores the resulting file encryption key.
func (sec *stdSecHandler) authenticate(pw string) bool {
	if sec.r < 6 {
		padded, err := padPasswd(pw)
		if err != nil {
			return false
		}
		return sec.authenticateUser(padded) || sec.authenticateOwner(padded)
	}
	prepared, err := utf8Passwd(pw)
	if err != nil {
		return false
	}
	return sec.authenticateUser6(prepared) || sec.authenticateOwner6(prepared)
}

// Algorithm 2 (ISO 32000-2): file encryption key for R <= 4.
func (sec *stdSecHandler) computeFileEncryptionKey(paddedUserPwd []byte) []byte {
	h := md5.New()
	h.Write(paddedUserPwd)
	h.Write(sec.o)
	h.Write([]byte{byte(sec.p), byte(sec.p >> 8), byte(sec.p >> 16), byte(sec.p >> 24)})
	h.Write(sec.id)
	if sec.unencryptedMetadata && sec.r >= 4 {
		h.Write([]byte{255, 255, 255, 255})
	}
	key := h.Sum(nil)

	if sec.r >= 3 {
		for i := 0; i < 50; i++ {
			h.Reset()
			h.Write(key[:sec.keyBytes])
			key = h.Sum(key[:0])
		}
	}
	return key[:sec.keyBytes]
}

// Algorithm 2.B (ISO 32000-2): the R6 hardened hash.
func slowHash(passwd, salt, u []byte) []byte {
	h := sha256.New()
	h.Write(passwd)
	h.Write(salt)
	h.Write(u)
	k := h.Sum(nil)

	k1 := make([]byte, 64*(len(passwd)+64+len(u)))
	for i := 0; i < 64 || k1[len(k1)-1] > byte(i-32); i++ {
		k1 = k1[:0]
		for j := 0; j < 64; j++ {
			k1 = append(k1, passwd...)
			k1 = append(k1, k...)
			k1 = append(k1, u...)
		}

		c, _ := aes.NewCipher(k[:16])
		cipher.NewCBCEncrypter(c, k[16:32]).CryptBlocks(k1, k1)

		var rem int
		for _, b := range k1[:16] {
			rem += int(b)
		}
		rem %= 3

		var hh hash.Hash
		switch rem {
		case 0:
			hh = sha256.New()
		case 1:
			hh = sha512.New384()
		case 2:
			hh = sha512.New()
		}
		hh.Write(k1)
		k = hh.Sum(k[:0])
	}
	return k[:32]
}

func (sec *stdSecHandler) computeU(key []byte) []byte {
	u := make([]byte, 32)
	switch sec.r {
	case 2:
		c, _ := rc4.NewCipher(key)
		c.XORKeyStream(u, passwdPad)
	case 3, 4:
		h := md5.New()
		h.Write(passwdPad)
		h.Write(sec.id)
		u = h.Sum(u[:0])
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
		u = append(u[:16], make([]byte, 16)...)
	}
	return u
}

// Algorithm 6: user password authentication (R2-R4).
func (sec *stdSecHandler) authenticateUser(paddedUserPwd []byte) bool {
	key := sec.computeFileEncryptionKey(paddedUserPwd)
	u := sec.computeU(key)
	ok := false
	switch sec.r {
	case 2:
		ok = bytes.Equal(u, sec.u)
	case 3, 4:
		ok = bytes.Equal(u[:16], sec.u[:16])
	}
	if ok {
		sec.key = key
	}
	return ok
}

// Algorithm 7: owner password authentication (R2-R4). The owner
// password recovers the padded user password via repeated RC4, then
// defers to authenticateUser.
func (sec *stdSecHandler) authenticateOwner(paddedOwnerPwd []byte) bool {
	h := md5.New()
	h.Write(paddedOwnerPwd)
	sum := h.Sum(nil)
	if sec.r >= 3 {
		for i := 0; i < 50; i++ {
			h.Reset()
			h.Write(sum[:sec.keyBytes])
			sum = h.Sum(sum[:0])
		}
	}
	key := sum[:sec.keyBytes]

	buf := make([]byte, 32)
	copy(buf, sec.o)
	switch sec.r {
	case 2:
		c, _ := rc4.NewCipher(key)
		c.XORKeyStream(buf, buf)
	case 3, 4:
		tmp := make([]byte, len(key))
		for i := 19; i >= 0; i-- {
			for j := range tmp {
				tmp[j] = key[j] ^ byte(i)
			}
			c, _ := rc4.NewCipher(tmp)
			c.XORKeyStream(buf, buf)
		}
	}
	return sec.authenticateUser(buf)
}

// Algorithm 11: user password authentication (R6).
func (sec *stdSecHandler) authenticateUser6(pw []byte) bool {
	if len(sec.u) < 48 {
		return false
	}
	hash := slowHash(pw, sec.u[32:40], nil)
	if !bytes.Equal(hash, sec.u[:32]) {
		return false
	}
	key := slowHash(pw, sec.u[40:48], nil)
	c, _ := aes.NewCipher(key)
	fileKey := make([]byte, 32)
	cipher.NewCBCDecrypter(c, zero16).CryptBlocks(fileKey, sec.ue)
	sec.key = fileKey
	return true
}

// Algorithm 12: owner password authentication (R6).
func (sec *stdSecHandler) authenticateOwner6(pw []byte) bool {
	if len(sec.o) < 48 {
		return false
	}
	hash := slowHash(pw, sec.o[32:40], sec.u)
	if !bytes.Equal(hash, sec.o[:32]) {
		return false
	}
	key := slowHash(pw, sec.o[40:48], sec.u)
	c, _ := aes.NewCipher(key)
	fileKey := make([]byte, 32)
	cipher.NewCBCDecrypter(c, zero16).CryptBlocks(fileKey, sec.oe)
	sec.key = fileKey
	return true
}

// keyForObject derives the per-object key used for object num/gen,
// Algorithm 1 (ISO 32000-2 §7.6.2). R6 documents use the file
// encryption key directly; earlier revisions salt it with the object
// number and generation (and, for AES, a further fixed salt).
func (sec *stdSecHandler) keyForObject(ck cipherKind, num int, gen uint16) []byte {
	if sec.r == 6 {
		return sec.key
	}
	h := md5.New()
	h.Write(sec.key)
	h.Write([]byte{
		byte(num), byte(num >> 8), byte(num >> 16),
		byte(gen), byte(gen >> 8),
	})
	if ck == cipherAES128 {
		h.Write([]byte("sAlT"))
	}
	n := len(sec.key) + 5
	if n > 16 {
		n = 16
	}
	return h.Sum(nil)[:n]
}

func utf8Passwd(passwd string) ([]byte, error) {
	prepped, err := stringprep.SASLprep.Prepare(passwd)
	if err != nil {
		return nil, errInvalidPassword
	}
	buf := []byte(prepped)
	if len(buf) > 127 {
		buf = buf[:127]
	}
	return buf, nil
}

// padPasswd pads a password to 32 bytes using the fixed PDF padding
// string, per Algorithm 2 step (a). Passwords are encoded as Latin-1,
// which covers the ASCII passwords the vast majority of encrypted
// documents use; codepoints above U+00FF are rejected.
func padPasswd(passwd string) ([]byte, error) {
	buf := make([]byte, 0, len(passwd))
	for _, r := range passwd {
		if r > 0xFF {
			return nil, errInvalidPassword
		}
		buf = append(buf, byte(r))
	}

	padded := make([]byte, 32)
	n := copy(padded, buf)
	copy(padded[n:], passwdPad)
	return padded, nil
}

var errInvalidPassword = errors.New("playa: password cannot be represented in PDFDocEncoding")

var passwdPad = []byte{
	0x28, 0xBF, 0x4E, 0x5E, 0x4E, 0x75, 0x8A, 0x41,
	0x64, 0x00, 0x4E, 0x56, 0xFF, 0xFA, 0x01, 0x08,
	0x2E, 0x2E, 0x00, 0xB6, 0xD0, 0x68, 0x3E, 0x80,
	0x2F, 0x0C, 0xA9, 0xFE, 0x64, 0x53, 0x69, 0x7A,
}

var zero16 = make([]byte, 16)
