package reveal

import (
	"strconv"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

const (
	DefaultThreshold  = 0.12
	DefaultRootMargin = "0px 0px -10% 0px"
)

var (
	ErrInvalidThreshold  = goerr.New("threshold must be within [0, 1]")
	ErrInvalidDelay      = goerr.New("delay must not be negative")
	ErrInvalidRootMargin = goerr.New("invalid root margin")
)

// Options controls when a target counts as visible and how it transitions in.
type Options struct {
	Threshold  float64
	RootMargin string
	Once       bool
	Delay      time.Duration
}

func DefaultOptions() Options {
	return Options{
		Threshold:  DefaultThreshold,
		RootMargin: DefaultRootMargin,
		Once:       true,
	}
}

// WithDelay returns a copy of o with the transition delay set.
func (o Options) WithDelay(d time.Duration) Options {
	o.Delay = d
	return o
}

func (o Options) DelayMillis() int64 {
	return o.Delay.Milliseconds()
}

func (o Options) Validate() error {
	if !(o.Threshold >= 0 && o.Threshold <= 1) {
		return goerr.Wrap(ErrInvalidThreshold, "validate reveal options", goerr.V("threshold", o.Threshold))
	}
	if o.Delay < 0 {
		return goerr.Wrap(ErrInvalidDelay, "validate reveal options", goerr.V("delay", o.Delay))
	}
	if _, err := ParseRootMargin(o.RootMargin); err != nil {
		return err
	}
	return nil
}

// Unit is the unit of a margin offset.
type Unit string

const (
	Pixels  Unit = "px"
	Percent Unit = "%"
)

// Length is one root margin offset, e.g. -10%.
type Length struct {
	Value float64
	Unit  Unit
}

func (l Length) String() string {
	return strconv.FormatFloat(l.Value, 'f', -1, 64) + string(l.Unit)
}

// Margins grows or shrinks the viewport box before intersections are
// computed. Negative values shrink it.
type Margins struct {
	Top, Right, Bottom, Left Length
}

func (m Margins) String() string {
	return strings.Join([]string{m.Top.String(), m.Right.String(), m.Bottom.String(), m.Left.String()}, " ")
}

// ParseRootMargin parses a CSS margin shorthand of one to four lengths.
// An empty string means no margin.
func ParseRootMargin(s string) (Margins, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		zero := Length{Unit: Pixels}
		return Margins{zero, zero, zero, zero}, nil
	}
	if len(fields) > 4 {
		return Margins{}, goerr.Wrap(ErrInvalidRootMargin, "too many values", goerr.V("root_margin", s))
	}

	lengths := make([]Length, len(fields))
	for i, f := range fields {
		l, err := parseLength(f)
		if err != nil {
			return Margins{}, goerr.Wrap(err, "parse root margin", goerr.V("root_margin", s))
		}
		lengths[i] = l
	}

	switch len(lengths) {
	case 1:
		return Margins{lengths[0], lengths[0], lengths[0], lengths[0]}, nil
	case 2:
		return Margins{lengths[0], lengths[1], lengths[0], lengths[1]}, nil
	case 3:
		return Margins{lengths[0], lengths[1], lengths[2], lengths[1]}, nil
	default:
		return Margins{lengths[0], lengths[1], lengths[2], lengths[3]}, nil
	}
}

func parseLength(s string) (Length, error) {
	var (
		unit Unit
		num  string
	)
	switch {
	case strings.HasSuffix(s, string(Pixels)):
		unit, num = Pixels, strings.TrimSuffix(s, string(Pixels))
	case strings.HasSuffix(s, string(Percent)):
		unit, num = Percent, strings.TrimSuffix(s, string(Percent))
	case s == "0":
		return Length{Unit: Pixels}, nil
	default:
		return Length{}, goerr.Wrap(ErrInvalidRootMargin, "length needs px or %", goerr.V("value", s))
	}

	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Length{}, goerr.Wrap(ErrInvalidRootMargin, "length is not a number", goerr.V("value", s))
	}
	return Length{Value: v, Unit: unit}, nil
}
