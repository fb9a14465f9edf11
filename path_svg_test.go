package captcha

import (
	"strings"
	"testing"

	"github.com/tdewolff/test"
)

func TestParseSVGPath(t *testing.T) {
	var tts = []struct {
		p    string
		want string
	}{
		{"", ""},
		{"M10 20L30 40", "M10 20L30 40"},
		{"M10,20 30,40", "M10 20L30 40"},
		{"m10 20 5 5", "M10 20L15 25"},
		{"m1 2l3 4h1v-1z", "M1 2L4 6L5 6L5 5z"},
		{"M1 2H5V7", "M1 2L5 2L5 7"},
		{"M0 0Q5 10 10 0T20 0", "M0 0Q5 10 10 0Q15 -10 20 0"},
		{"M0 0q5 10 10 0t10 0", "M0 0Q5 10 10 0Q15 -10 20 0"},
		{"M0 0C0 10 10 10 10 0S20 -10 20 0", "M0 0C0 10 10 10 10 0C10 -10 20 -10 20 0"},
		{"M0 0S5 5 10 0", "M0 0C0 0 5 5 10 0"},
		{"M0 0T10 0", "M0 0Q0 0 10 0"},
		{"M0 0R1 5 5 .5 10 0 2", "M0 0R1 5 5 .5 10 0 2"},
		{"M10 10r1 5 5 .5 10 0 2", "M10 10R1 15 15 .5 20 10 2"},
		{"M1 1L2 2zL3 3", "M1 1L2 2zL3 3"},
		{"M1 1L2 2zl1 1", "M1 1L2 2zL2 2"},
		{"M.5-.5L1e1 2E-1", "M.5 -.5L10 .2"},
		{" M 1 1 \n L 2 2 ", "M1 1L2 2"},
	}
	for _, tt := range tts {
		t.Run(tt.p, func(t *testing.T) {
			p, err := ParseSVGPath(tt.p)
			test.Error(t, err)
			test.String(t, p.String(), tt.want)
		})
	}
}

func TestParseSVGPathErrors(t *testing.T) {
	var tts = []struct {
		p   string
		err string
	}{
		{"L1 1", "bad path: path should start with command 'M' or 'm' instead of 'L'"},
		{"M1", "bad path: 2 numbers should follow command 'M' at position 3"},
		{"M1 1X", "bad path: unknown command 'X' at position 6"},
		{"M1 1L2 2z3", "bad path: unexpected number after command 'z' at position 10"},
		{"M0 0R1 2 3", "bad path: 7 numbers should follow command 'R' at position 11"},
	}
	for _, tt := range tts {
		t.Run(tt.p, func(t *testing.T) {
			_, err := ParseSVGPath(tt.p)
			test.That(t, err != nil)
			if err != nil {
				test.String(t, err.Error(), tt.err)
			}
		})
	}
}

func TestPathStringRoundTrip(t *testing.T) {
	for _, s := range []string{
		"M1 2L3 4Q5 6 7 8C9 10 11 12 13 14R1 15 16 .5 17 18 2z",
		"M-1.5 .25L.000001 -3",
		"M0 0L1 1M2 2L3 3z",
	} {
		p := MustParseSVGPath(s)
		test.String(t, p.String(), s)
		test.That(t, MustParseSVGPath(p.String()).Equals(p))
	}
	test.String(t, MustParseSVGPath("M.1234567 -.0000001").String(), "M.123457 0")
	test.String(t, MustParseSVGPath("M1234.5678901 -10").String(), "M1234.56789 -10")
}

func TestPathToSVG(t *testing.T) {
	p := MustParseSVGPath("M0 0L10 0")
	test.String(t, p.ToSVG("red", 1.5), `<path d="M0 0L10 0" fill="none" stroke="red" stroke-width="1.5"/>`)

	p = &Path{}
	p.Oval(0, 0, 10, 10, CW)
	svg := p.ToSVG("black", 1.0)
	test.That(t, !strings.Contains(svg, "R"), "rational curves must be flattened")
	test.That(t, strings.HasPrefix(svg, `<path d="M10 5L`))
	test.That(t, strings.Contains(svg, `z" fill="none"`))
}

func TestMustParseSVGPath(t *testing.T) {
	defer func() {
		test.That(t, recover() != nil)
	}()
	MustParseSVGPath("X")
}
