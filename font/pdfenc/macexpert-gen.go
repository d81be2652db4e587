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

package pdfenc

// macExpertEncoding is an encoding which contains more obscure
// characters, mostly small caps and ligatures for expert-level Latin
// typesetting.
//
// See Appendix D.4 of PDF 32000-1:2008.
var macExpertEncoding = [256]string{
	".notdef",             // 0   0x00 \000
	".notdef",             // 1   0x01 \001
	".notdef",             // 2   0x02 \002
	".notdef",             // 3   0x03 \003
	".notdef",             // 4   0x04 \004
	".notdef",             // 5   0x05 \005
	".notdef",             // 6   0x06 \006
	".notdef",             // 7   0x07 \007
	".notdef",             // 8   0x08 \010
	".notdef",             // 9   0x09 \011
	".notdef",             // 10  0x0a \012
	".notdef",             // 11  0x0b \013
	".notdef",             // 12  0x0c \014
	".notdef",             // 13  0x0d \015
	".notdef",             // 14  0x0e \016
	".notdef",             // 15  0x0f \017
	".notdef",             // 16  0x10 \020
	".notdef",             // 17  0x11 \021
	".notdef",             // 18  0x12 \022
	".notdef",             // 19  0x13 \023
	".notdef",             // 20  0x14 \024
	".notdef",             // 21  0x15 \025
	".notdef",             // 22  0x16 \026
	".notdef",             // 23  0x17 \027
	".notdef",             // 24  0x18 \030
	".notdef",             // 25  0x19 \031
	".notdef",             // 26  0x1a \032
	".notdef",             // 27  0x1b \033
	".notdef",             // 28  0x1c \034
	".notdef",             // 29  0x1d \035
	".notdef",             // 30  0x1e \036
	".notdef",             // 31  0x1f \037
	"space",               // 32  0x20 \040 " "
	"exclamsmall",         // 33  0x21 \041 "!"
	"Hungarumlautsmall",   // 34  0x22 \042 "˝"
	"centoldstyle",        // 35  0x23 \043 "¢"
	"dollaroldstyle",      // 36  0x24 \044 "$"
	"dollarsuperior",      // 37  0x25 \045 "$"
	"ampersandsmall",      // 38  0x26 \046 "&"
	"Acutesmall",          // 39  0x27 \047 "´"
	"parenleftsuperior",   // 40  0x28 \050 "⁽"
	"parenrightsuperior",  // 41  0x29 \051 "⁾"
	"twodotenleader",      // 42  0x2a \052 "‥"
	"onedotenleader",      // 43  0x2b \053 "․"
	"comma",               // 44  0x2c \054 ","
	"hyphen",              // 45  0x2d \055 "-"
	"period",              // 46  0x2e \056 "."
	"fraction",            // 47  0x2f \057 "⁄"
	"zerooldstyle",        // 48  0x30 \060 "0"
	"oneoldstyle",         // 49  0x31 \061 "1"
	"twooldstyle",         // 50  0x32 \062 "2"
	"threeoldstyle",       // 51  0x33 \063 "3"
	"fouroldstyle",        // 52  0x34 \064 "4"
	"fiveoldstyle",        // 53  0x35 \065 "5"
	"sixoldstyle",         // 54  0x36 \066 "6"
	"sevenoldstyle",       // 55  0x37 \067 "7"
	"eightoldstyle",       // 56  0x38 \070 "8"
	"nineoldstyle",        // 57  0x39 \071 "9"
	"colon",               // 58  0x3a \072 ":"
	"semicolon",           // 59  0x3b \073 ";"
	".notdef",             // 60  0x3c \074
	"threequartersemdash", // 61  0x3d \075 "—"
	".notdef",             // 62  0x3e \076
	"questionsmall",       // 63  0x3f \077 "?"
	".notdef",             // 64  0x40 \100
	".notdef",             // 65  0x41 \101
	".notdef",             // 66  0x42 \102
	".notdef",             // 67  0x43 \103
	"Ethsmall",            // 68  0x44 \104 "ᴆ"
	".notdef",             // 69  0x45 \105
	".notdef",             // 70  0x46 \106
	"onequarter",          // 71  0x47 \107 "¼"
	"onehalf",             // 72  0x48 \110 "½"
	"threequarters",       // 73  0x49 \111 "¾"
	"oneeighth",           // 74  0x4a \112 "⅛"
	"threeeighths",        // 75  0x4b \113 "⅜"
	"fiveeighths",         // 76  0x4c \114 "⅝"
	"seveneighths",        // 77  0x4d \115 "⅞"
	"onethird",            // 78  0x4e \116 "⅓"
	"twothirds",           // 79  0x4f \117 "⅔"
	".notdef",             // 80  0x50 \120
	".notdef",             // 81  0x51 \121
	".notdef",             // 82  0x52 \122
	".notdef",             // 83  0x53 \123
	".notdef",             // 84  0x54 \124
	".notdef",             // 85  0x55 \125
	"ff",                  // 86  0x56 \126 "ﬀ"
	"fi",                  // 87  0x57 \127 "ﬁ"
	"fl",                  // 88  0x58 \130 "ﬂ"
	"ffi",                 // 89  0x59 \131 "ﬃ"
	"ffl",                 // 90  0x5a \132 "ﬄ"
	"parenleftinferior",   // 91  0x5b \133 "₍"
	".notdef",             // 92  0x5c \134
	"parenrightinferior",  // 93  0x5d \135 "₎"
	"Circumflexsmall",     // 94  0x5e \136 "ˆ"
	"hypheninferior",      // 95  0x5f \137 "-"
	"Gravesmall",          // 96  0x60 \140 "`"
	"Asmall",              // 97  0x61 \141 "ᴀ"
	"Bsmall",              // 98  0x62 \142 "ʙ"
	"Csmall",              // 99  0x63 \143 "ᴄ"
	"Dsmall",              // 100 0x64 \144 "ᴅ"
	"Esmall",              // 101 0x65 \145 "ᴇ"
	"Fsmall",              // 102 0x66 \146 "F"
	"Gsmall",              // 103 0x67 \147 "G"
	"Hsmall",              // 104 0x68 \150 "ʜ"
	"Ismall",              // 105 0x69 \151 "I"
	"Jsmall",              // 106 0x6a \152 "ᴊ"
	"Ksmall",              // 107 0x6b \153 "ᴋ"
	"Lsmall",              // 108 0x6c \154 "ʟ"
	"Msmall",              // 109 0x6d \155 "ᴍ"
	"Nsmall",              // 110 0x6e \156 "ɴ"
	"Osmall",              // 111 0x6f \157 "ᴏ"
	"Psmall",              // 112 0x70 \160 "ᴘ"
	"Qsmall",              // 113 0x71 \161 "Q"
	"Rsmall",              // 114 0x72 \162 "R"
	"Ssmall",              // 115 0x73 \163 "S"
	"Tsmall",              // 116 0x74 \164 "ᴛ"
	"Usmall",              // 117 0x75 \165 "ᴜ"
	"Vsmall",              // 118 0x76 \166 "ᴠ"
	"Wsmall",              // 119 0x77 \167 "ᴡ"
	"Xsmall",              // 120 0x78 \170 "X"
	"Ysmall",              // 121 0x79 \171 "Y"
	"Zsmall",              // 122 0x7a \172 "z"
	"colonmonetary",       // 123 0x7b \173 "₡"
	"onefitted",           // 124 0x7c \174 "1"
	"rupiah",              // 125 0x7d \175 "Rp"
	"Tildesmall",          // 126 0x7e \176 "˜"
	".notdef",             // 127 0x7f \177
	".notdef",             // 128 0x80 \200
	"asuperior",           // 129 0x81 \201 "a"
	"centsuperior",        // 130 0x82 \202 "¢"
	".notdef",             // 131 0x83 \203
	".notdef",             // 132 0x84 \204
	".notdef",             // 133 0x85 \205
	".notdef",             // 134 0x86 \206
	"Aacutesmall",         // 135 0x87 \207 "Á"
	"Agravesmall",         // 136 0x88 \210 "À"
	"Acircumflexsmall",    // 137 0x89 \211 "Â"
	"Adieresissmall",      // 138 0x8a \212 "Ä"
	"Atildesmall",         // 139 0x8b \213 "Ã"
	"Aringsmall",          // 140 0x8c \214 "Å"
	"Ccedillasmall",       // 141 0x8d \215 "Ç"
	"Eacutesmall",         // 142 0x8e \216 "É"
	"Egravesmall",         // 143 0x8f \217 "È"
	"Ecircumflexsmall",    // 144 0x90 \220 "Ê"
	"Edieresissmall",      // 145 0x91 \221 "Ë"
	"Iacutesmall",         // 146 0x92 \222 "Í"
	"Igravesmall",         // 147 0x93 \223 "Ì"
	"Icircumflexsmall",    // 148 0x94 \224 "Î"
	"Idieresissmall",      // 149 0x95 \225 "Ï"
	"Ntildesmall",         // 150 0x96 \226 "Ñ"
	"Oacutesmall",         // 151 0x97 \227 "Ó"
	"Ogravesmall",         // 152 0x98 \230 "ò"
	"Ocircumflexsmall",    // 153 0x99 \231 "Ô"
	"Odieresissmall",      // 154 0x9a \232 "Ö"
	"Otildesmall",         // 155 0x9b \233 "Õ"
	"Uacutesmall",         // 156 0x9c \234 "Ú"
	"Ugravesmall",         // 157 0x9d \235 "Ù"
	"Ucircumflexsmall",    // 158 0x9e \236 "Û"
	"Udieresissmall",      // 159 0x9f \237 "Ü"
	".notdef",             // 160 0xa0 \240
	"eightsuperior",       // 161 0xa1 \241 "⁸"
	"fourinferior",        // 162 0xa2 \242 "₄"
	"threeinferior",       // 163 0xa3 \243 "₃"
	"sixinferior",         // 164 0xa4 \244 "₆"
	"eightinferior",       // 165 0xa5 \245 "₈"
	"seveninferior",       // 166 0xa6 \246 "₇"
	"Scaronsmall",         // 167 0xa7 \247 "Š"
	".notdef",             // 168 0xa8 \250
	"centinferior",        // 169 0xa9 \251 "¢"
	"twoinferior",         // 170 0xaa \252 "₂"
	".notdef",             // 171 0xab \253
	"Dieresissmall",       // 172 0xac \254 "¨"
	".notdef",             // 173 0xad \255
	"Caronsmall",          // 174 0xae \256 "ˇ"
	"osuperior",           // 175 0xaf \257 "O"
	"fiveinferior",        // 176 0xb0 \260 "₅"
	".notdef",             // 177 0xb1 \261
	"commainferior",       // 178 0xb2 \262 ","
	"periodinferior",      // 179 0xb3 \263 "."
	"Yacutesmall",         // 180 0xb4 \264 "Ý"
	".notdef",             // 181 0xb5 \265
	"dollarinferior",      // 182 0xb6 \266 "$"
	".notdef",             // 183 0xb7 \267
	".notdef",             // 184 0xb8 \270
	"Thornsmall",          // 185 0xb9 \271 "þ"
	".notdef",             // 186 0xba \272
	"nineinferior",        // 187 0xbb \273 "₉"
	"zeroinferior",        // 188 0xbc \274 "₀"
	"Zcaronsmall",         // 189 0xbd \275 "Ž"
	"AEsmall",             // 190 0xbe \276 "ᴁ"
	"Oslashsmall",         // 191 0xbf \277 "ø"
	"questiondownsmall",   // 192 0xc0 \300 "¿"
	"oneinferior",         // 193 0xc1 \301 "₁"
	"Lslashsmall",         // 194 0xc2 \302 "ᴌ"
	".notdef",             // 195 0xc3 \303
	".notdef",             // 196 0xc4 \304
	".notdef",             // 197 0xc5 \305
	".notdef",             // 198 0xc6 \306
	".notdef",             // 199 0xc7 \307
	".notdef",             // 200 0xc8 \310
	"Cedillasmall",        // 201 0xc9 \311 "¸"
	".notdef",             // 202 0xca \312
	".notdef",             // 203 0xcb \313
	".notdef",             // 204 0xcc \314
	".notdef",             // 205 0xcd \315
	".notdef",             // 206 0xce \316
	"OEsmall",             // 207 0xcf \317 "ɶ"
	"figuredash",          // 208 0xd0 \320 "‒"
	"hyphensuperior",      // 209 0xd1 \321 "-"
	".notdef",             // 210 0xd2 \322
	".notdef",             // 211 0xd3 \323
	".notdef",             // 212 0xd4 \324
	".notdef",             // 213 0xd5 \325
	"exclamdownsmall",     // 214 0xd6 \326 "¡"
	".notdef",             // 215 0xd7 \327
	"Ydieresissmall",      // 216 0xd8 \330 "Ÿ"
	".notdef",             // 217 0xd9 \331
	"onesuperior",         // 218 0xda \332 "¹"
	"twosuperior",         // 219 0xdb \333 "²"
	"threesuperior",       // 220 0xdc \334 "³"
	"foursuperior",        // 221 0xdd \335 "⁴"
	"fivesuperior",        // 222 0xde \336 "⁵"
	"sixsuperior",         // 223 0xdf \337 "⁶"
	"sevensuperior",       // 224 0xe0 \340 "⁷"
	"ninesuperior",        // 225 0xe1 \341 "⁹"
	"zerosuperior",        // 226 0xe2 \342 "⁰"
	".notdef",             // 227 0xe3 \343
	"esuperior",           // 228 0xe4 \344 "e"
	"rsuperior",           // 229 0xe5 \345 "r"
	"tsuperior",           // 230 0xe6 \346 "t"
	".notdef",             // 231 0xe7 \347
	".notdef",             // 232 0xe8 \350
	"isuperior",           // 233 0xe9 \351 "i"
	"ssuperior",           // 234 0xea \352 "S"
	"dsuperior",           // 235 0xeb \353 "d"
	".notdef",             // 236 0xec \354
	".notdef",             // 237 0xed \355
	".notdef",             // 238 0xee \356
	".notdef",             // 239 0xef \357
	".notdef",             // 240 0xf0 \360
	"lsuperior",           // 241 0xf1 \361 "l"
	"Ogoneksmall",         // 242 0xf2 \362 "˛"
	"Brevesmall",          // 243 0xf3 \363 "˘"
	"Macronsmall",         // 244 0xf4 \364 "¯"
	"bsuperior",           // 245 0xf5 \365 "b"
	"nsuperior",           // 246 0xf6 \366 "ⁿ"
	"msuperior",           // 247 0xf7 \367 "m"
	"commasuperior",       // 248 0xf8 \370 ","
	"periodsuperior",      // 249 0xf9 \371 "."
	"Dotaccentsmall",      // 250 0xfa \372 "˙"
	"Ringsmall",           // 251 0xfb \373 "˚"
	".notdef",             // 252 0xfc \374
	".notdef",             // 253 0xfd \375
	".notdef",             // 254 0xfe \376
	".notdef",             // 255 0xff \377
}

var macExpertEncodingHas = map[string]bool{
	"AEsmall":             true,
	"Aacutesmall":         true,
	"Acircumflexsmall":    true,
	"Acutesmall":          true,
	"Adieresissmall":      true,
	"Agravesmall":         true,
	"Aringsmall":          true,
	"Asmall":              true,
	"Atildesmall":         true,
	"Brevesmall":          true,
	"Bsmall":              true,
	"Caronsmall":          true,
	"Ccedillasmall":       true,
	"Cedillasmall":        true,
	"Circumflexsmall":     true,
	"Csmall":              true,
	"Dieresissmall":       true,
	"Dotaccentsmall":      true,
	"Dsmall":              true,
	"Eacutesmall":         true,
	"Ecircumflexsmall":    true,
	"Edieresissmall":      true,
	"Egravesmall":         true,
	"Esmall":              true,
	"Ethsmall":            true,
	"Fsmall":              true,
	"Gravesmall":          true,
	"Gsmall":              true,
	"Hsmall":              true,
	"Hungarumlautsmall":   true,
	"Iacutesmall":         true,
	"Icircumflexsmall":    true,
	"Idieresissmall":      true,
	"Igravesmall":         true,
	"Ismall":              true,
	"Jsmall":              true,
	"Ksmall":              true,
	"Lslashsmall":         true,
	"Lsmall":              true,
	"Macronsmall":         true,
	"Msmall":              true,
	"Nsmall":              true,
	"Ntildesmall":         true,
	"OEsmall":             true,
	"Oacutesmall":         true,
	"Ocircumflexsmall":    true,
	"Odieresissmall":      true,
	"Ogoneksmall":         true,
	"Ogravesmall":         true,
	"Oslashsmall":         true,
	"Osmall":              true,
	"Otildesmall":         true,
	"Psmall":              true,
	"Qsmall":              true,
	"Ringsmall":           true,
	"Rsmall":              true,
	"Scaronsmall":         true,
	"Ssmall":              true,
	"Thornsmall":          true,
	"Tildesmall":          true,
	"Tsmall":              true,
	"Uacutesmall":         true,
	"Ucircumflexsmall":    true,
	"Udieresissmall":      true,
	"Ugravesmall":         true,
	"Usmall":              true,
	"Vsmall":              true,
	"Wsmall":              true,
	"Xsmall":              true,
	"Yacutesmall":         true,
	"Ydieresissmall":      true,
	"Ysmall":              true,
	"Zcaronsmall":         true,
	"Zsmall":              true,
	"ampersandsmall":      true,
	"asuperior":           true,
	"bsuperior":           true,
	"centinferior":        true,
	"centoldstyle":        true,
	"centsuperior":        true,
	"colon":               true,
	"colonmonetary":       true,
	"comma":               true,
	"commainferior":       true,
	"commasuperior":       true,
	"dollarinferior":      true,
	"dollaroldstyle":      true,
	"dollarsuperior":      true,
	"dsuperior":           true,
	"eightinferior":       true,
	"eightoldstyle":       true,
	"eightsuperior":       true,
	"esuperior":           true,
	"exclamdownsmall":     true,
	"exclamsmall":         true,
	"ff":                  true,
	"ffi":                 true,
	"ffl":                 true,
	"fi":                  true,
	"figuredash":          true,
	"fiveeighths":         true,
	"fiveinferior":        true,
	"fiveoldstyle":        true,
	"fivesuperior":        true,
	"fl":                  true,
	"fourinferior":        true,
	"fouroldstyle":        true,
	"foursuperior":        true,
	"fraction":            true,
	"hyphen":              true,
	"hypheninferior":      true,
	"hyphensuperior":      true,
	"isuperior":           true,
	"lsuperior":           true,
	"msuperior":           true,
	"nineinferior":        true,
	"nineoldstyle":        true,
	"ninesuperior":        true,
	"nsuperior":           true,
	"onedotenleader":      true,
	"oneeighth":           true,
	"onefitted":           true,
	"onehalf":             true,
	"oneinferior":         true,
	"oneoldstyle":         true,
	"onequarter":          true,
	"onesuperior":         true,
	"onethird":            true,
	"osuperior":           true,
	"parenleftinferior":   true,
	"parenleftsuperior":   true,
	"parenrightinferior":  true,
	"parenrightsuperior":  true,
	"period":              true,
	"periodinferior":      true,
	"periodsuperior":      true,
	"questiondownsmall":   true,
	"questionsmall":       true,
	"rsuperior":           true,
	"rupiah":              true,
	"semicolon":           true,
	"seveneighths":        true,
	"seveninferior":       true,
	"sevenoldstyle":       true,
	"sevensuperior":       true,
	"sixinferior":         true,
	"sixoldstyle":         true,
	"sixsuperior":         true,
	"space":               true,
	"ssuperior":           true,
	"threeeighths":        true,
	"threeinferior":       true,
	"threeoldstyle":       true,
	"threequarters":       true,
	"threequartersemdash": true,
	"threesuperior":       true,
	"tsuperior":           true,
	"twodotenleader":      true,
	"twoinferior":         true,
	"twooldstyle":         true,
	"twosuperior":         true,
	"twothirds":           true,
	"zeroinferior":        true,
	"zerooldstyle":        true,
	"zerosuperior":        true,
}
