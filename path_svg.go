package captcha

import (
	"fmt"
	"math"
	"strings"

	"github.com/tdewolff/minify/v2"
	parseStrconv "github.com/tdewolff/parse/v2/strconv"
)

// precision is the number of decimals kept when writing coordinates.
const precision = 6

func num(f float64) string {
	f = math.Round(f*math.Pow10(precision)) / math.Pow10(precision)
	if f == 0.0 {
		return "0" // no negative zero
	}
	s := fmt.Sprintf("%.*f", precision, f)
	return string(minify.Decimal([]byte(s), 0)) // decimals are already fixed, keep all significant digits
}

// String returns the path as SVG path data. Rational curves are written with the non-standard command R followed by the start weight, control point, control weight, end point and end weight. Contour shortcuts are written disassembled.
func (p *Path) String() string {
	sb := strings.Builder{}
	for _, ins := range p.ins {
		for _, sub := range ins.Disassemble() {
			switch sub.Cmd {
			case MoveToCmd:
				fmt.Fprintf(&sb, "M%s %s", num(sub.P[0].X), num(sub.P[0].Y))
			case LineToCmd:
				fmt.Fprintf(&sb, "L%s %s", num(sub.P[0].X), num(sub.P[0].Y))
			case QuadToCmd:
				fmt.Fprintf(&sb, "Q%s %s %s %s", num(sub.P[0].X), num(sub.P[0].Y), num(sub.P[1].X), num(sub.P[1].Y))
			case CubeToCmd:
				fmt.Fprintf(&sb, "C%s %s %s %s %s %s", num(sub.P[0].X), num(sub.P[0].Y), num(sub.P[1].X), num(sub.P[1].Y), num(sub.P[2].X), num(sub.P[2].Y))
			case RationalToCmd:
				fmt.Fprintf(&sb, "R%s %s %s %s %s %s %s", num(sub.W[0]), num(sub.P[0].X), num(sub.P[0].Y), num(sub.W[1]), num(sub.P[1].X), num(sub.P[1].Y), num(sub.W[2]))
			case CloseCmd:
				sb.WriteString("z")
			}
		}
	}
	return sb.String()
}

// ToSVG returns the path as an SVG path element. Rational curves are flattened into lines since SVG has no rational Bézier curves.
func (p *Path) ToSVG(stroke string, strokeWidth float64) string {
	q := p.Copy().Disassemble()
	ins := make([]Instruction, 0, len(q.ins))
	for pen, in := range q.Segments() {
		if in.Cmd == RationalToCmd {
			for _, c := range granulate(in.RationalCurve(pen.Pos), flattenTolerance) {
				ins = append(ins, Instruction{Cmd: LineToCmd, P: [3]Point{c.End()}})
			}
			continue
		}
		ins = append(ins, *in)
	}
	q.ins = ins
	return fmt.Sprintf(`<path d="%s" fill="none" stroke="%s" stroke-width="%s"/>`, q.String(), stroke, num(strokeWidth))
}

// flattenTolerance is the chord length used to flatten curves for output formats that lack them.
const flattenTolerance = 0.5

////////////////////////////////////////////////////////////////

func skipCommaWhitespace(path []byte) int {
	i := 0
	for i < len(path) && (path[i] == ' ' || path[i] == ',' || path[i] == '\n' || path[i] == '\r' || path[i] == '\t') {
		i++
	}
	return i
}

// MustParseSVGPath parses an SVG path data string and panics if it fails.
func MustParseSVGPath(s string) *Path {
	p, err := ParseSVGPath(s)
	if err != nil {
		panic(err)
	}
	return p
}

// ParseSVGPath parses an SVG path data string. Next to the standard commands except arcs, it accepts R and r for rational quadratic curves as written by Path.String.
func ParseSVGPath(s string) (*Path, error) {
	path := []byte(s)
	i := skipCommaWhitespace(path)
	if i == len(path) {
		return &Path{}, nil
	} else if path[i] != 'M' && path[i] != 'm' {
		return nil, fmt.Errorf("bad path: path should start with command 'M' or 'm' instead of '%c'", path[i])
	}

	var prevCmd byte
	var f [7]float64
	cpx, cpy := 0.0, 0.0 // control point of the previous curve for S and T
	p := &Path{}
	pen := Pen{}
	for i < len(path) {
		cmd := prevCmd
		explicit := false
		if c := path[i]; 'A' <= c && c <= 'Z' || 'a' <= c && c <= 'z' {
			cmd = c
			explicit = true
			i++
			i += skipCommaWhitespace(path[i:])
		} else if prevCmd == 'M' {
			cmd = 'L' // implicit lines after a move
		} else if prevCmd == 'm' {
			cmd = 'l'
		}

		var n int
		switch cmd {
		case 'M', 'm', 'L', 'l', 'T', 't':
			n = 2
		case 'H', 'h', 'V', 'v':
			n = 1
		case 'Q', 'q', 'S', 's':
			n = 4
		case 'C', 'c':
			n = 6
		case 'R', 'r':
			n = 7
		case 'Z', 'z':
			if !explicit {
				return nil, fmt.Errorf("bad path: unexpected number after command '%c' at position %d", cmd, i+1)
			}
			n = 0
		default:
			return nil, fmt.Errorf("bad path: unknown command '%c' at position %d", cmd, i+1)
		}
		for j := 0; j < n; j++ {
			v, m := parseStrconv.ParseFloat(path[i:])
			if m == 0 {
				return nil, fmt.Errorf("bad path: %d numbers should follow command '%c' at position %d", n, cmd, i+1)
			}
			f[j] = v
			i += m
			i += skipCommaWhitespace(path[i:])
		}

		x, y := pen.Pos.X, pen.Pos.Y
		if 'a' <= cmd && cmd <= 'z' {
			switch cmd {
			case 'h':
				f[0] += x
			case 'v':
				f[0] += y
			case 'r':
				f[1] += x
				f[2] += y
				f[4] += x
				f[5] += y
			default:
				for j := 0; j+1 < n; j += 2 {
					f[j] += x
					f[j+1] += y
				}
			}
		}

		switch cmd {
		case 'M', 'm':
			p.MoveTo(f[0], f[1])
		case 'L', 'l':
			p.LineTo(f[0], f[1])
		case 'H', 'h':
			p.LineTo(f[0], y)
		case 'V', 'v':
			p.LineTo(x, f[0])
		case 'Q', 'q':
			p.QuadTo(f[0], f[1], f[2], f[3])
			cpx, cpy = f[0], f[1]
		case 'T', 't':
			if prevCmd == 'Q' || prevCmd == 'q' || prevCmd == 'T' || prevCmd == 't' {
				cpx, cpy = 2.0*x-cpx, 2.0*y-cpy
			} else {
				cpx, cpy = x, y
			}
			p.QuadTo(cpx, cpy, f[0], f[1])
		case 'C', 'c':
			p.CubeTo(f[0], f[1], f[2], f[3], f[4], f[5])
			cpx, cpy = f[2], f[3]
		case 'S', 's':
			cp1x, cp1y := x, y
			if prevCmd == 'C' || prevCmd == 'c' || prevCmd == 'S' || prevCmd == 's' {
				cp1x, cp1y = 2.0*x-cpx, 2.0*y-cpy
			}
			p.CubeTo(cp1x, cp1y, f[0], f[1], f[2], f[3])
			cpx, cpy = f[0], f[1]
		case 'R', 'r':
			p.RationalTo(f[0], f[1], f[2], f[3], f[4], f[5], f[6])
		case 'Z', 'z':
			p.Close()
		}
		pen = pen.Advance(p.ins[len(p.ins)-1])
		prevCmd = cmd
	}
	return p, nil
}
