package tui

import "strings"

// QWERTY columns per finger, unshifted and shifted.
var fingerRows = []struct {
	name string
	keys string
}{
	{"left pinky", "`1qaz~!QAZ"},
	{"left ring", "2wsx@WSX"},
	{"left middle", "3edc#EDC"},
	{"left index", "4rfv5tgb$RFV%TGB"},
	{"right index", "6yhn7ujm^YHN&UJM"},
	{"right middle", "8ik,*IK<"},
	{"right ring", "9ol.(OL>"},
	{"right pinky", "0p;/-[']=\\)P:?_{\"}+|"},
}

// FingerFor names the finger that types r in touch typing on a QWERTY layout.
func FingerFor(r rune) (string, bool) {
	for _, row := range fingerRows {
		if strings.ContainsRune(row.keys, r) {
			return row.name, true
		}
	}
	return "", false
}
