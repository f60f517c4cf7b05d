package gcode

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// MoveType represents the type of toolpath movement.
type MoveType int

const (
	MoveRapid   MoveType = iota // G0: rapid positioning (no cutting)
	MoveFeed                    // G1: linear feed (cutting move in XY plane)
	MovePlunge                  // G1 with Z decreasing: plunging into material
	MoveRetract                 // G0/G1 with Z increasing: retracting from material
)

func (t MoveType) String() string {
	switch t {
	case MoveRapid:
		return "rapid"
	case MoveFeed:
		return "feed"
	case MovePlunge:
		return "plunge"
	case MoveRetract:
		return "retract"
	default:
		return "unknown"
	}
}

// Move represents a single parsed movement.
type Move struct {
	Type     MoveType
	FromX    float64
	FromY    float64
	FromZ    float64
	ToX      float64
	ToY      float64
	ToZ      float64
	FeedRate float64
}

// Length is the straight-line distance travelled by the move.
func (m Move) Length() float64 {
	dx, dy, dz := m.ToX-m.FromX, m.ToY-m.FromY, m.ToZ-m.FromZ
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

var coordRe = regexp.MustCompile(`([XYZF])(-?\d+\.?\d*)`)

// ParseMoves parses a GCode program into a slice of structured moves.
// It tracks absolute position state and classifies each G0/G1 command
// by its movement characteristics (rapid, feed, plunge, retract).
func ParseMoves(code string) []Move {
	var moves []Move

	// Current machine state
	curX, curY, curZ := 0.0, 0.0, 0.0
	curFeed := 0.0

	for _, line := range strings.Split(code, "\n") {
		line = stripComments(strings.TrimSpace(line))
		if line == "" {
			continue
		}

		upper := strings.ToUpper(line)
		word := upper
		if idx := strings.IndexByte(upper, ' '); idx >= 0 {
			word = upper[:idx]
		}
		var isRapid bool
		switch word {
		case "G0", "G00":
			isRapid = true
		case "G1", "G01":
		default:
			continue
		}

		newX, newY, newZ, newFeed := curX, curY, curZ, curFeed
		for _, m := range coordRe.FindAllStringSubmatch(upper, -1) {
			val, err := strconv.ParseFloat(m[2], 64)
			if err != nil {
				continue
			}
			switch m[1] {
			case "X":
				newX = val
			case "Y":
				newY = val
			case "Z":
				newZ = val
			case "F":
				newFeed = val
			}
		}

		moves = append(moves, Move{
			Type:     classifyMove(isRapid, curZ, newZ, curX, curY, newX, newY),
			FromX:    curX,
			FromY:    curY,
			FromZ:    curZ,
			ToX:      newX,
			ToY:      newY,
			ToZ:      newZ,
			FeedRate: newFeed,
		})

		curX, curY, curZ, curFeed = newX, newY, newZ, newFeed
	}

	return moves
}

// stripComments removes semicolon and parenthetical comments.
func stripComments(line string) string {
	if idx := strings.Index(line, ";"); idx >= 0 {
		line = line[:idx]
	}
	if idx := strings.Index(line, "("); idx >= 0 {
		if end := strings.Index(line, ")"); end > idx {
			line = line[:idx] + line[end+1:]
		} else {
			line = line[:idx]
		}
	}
	return strings.TrimSpace(line)
}

// classifyMove determines the MoveType based on movement characteristics.
func classifyMove(isRapid bool, fromZ, toZ, fromX, fromY, toX, toY float64) MoveType {
	zDelta := toZ - fromZ
	hasXY := fromX != toX || fromY != toY

	switch {
	case isRapid:
		if zDelta > 0 {
			return MoveRetract
		}
		return MoveRapid
	case zDelta < -0.001 && !hasXY:
		return MovePlunge
	case zDelta > 0.001 && !hasXY:
		return MoveRetract
	default:
		return MoveFeed
	}
}

// RapidRate is the traverse speed assumed for G0 moves, in mm/min.
const RapidRate = 5000.0

// Summary aggregates a parsed program.
type Summary struct {
	Rapids   int
	Feeds    int
	Plunges  int
	Retracts int

	// CutDistance is the XY distance travelled at feed rate, in mm.
	CutDistance float64
	// MaxDepth is the deepest Z below the stock surface, as a positive mm value.
	MaxDepth float64
	// EstimatedMinutes is the machining time at the programmed feeds plus
	// rapids at RapidRate.
	EstimatedMinutes float64
}

// Summarize counts moves by type and estimates run time.
func Summarize(moves []Move) Summary {
	var s Summary
	for _, m := range moves {
		switch m.Type {
		case MoveRapid:
			s.Rapids++
		case MoveFeed:
			s.Feeds++
			s.CutDistance += math.Hypot(m.ToX-m.FromX, m.ToY-m.FromY)
		case MovePlunge:
			s.Plunges++
		case MoveRetract:
			s.Retracts++
		}
		if -m.ToZ > s.MaxDepth {
			s.MaxDepth = -m.ToZ
		}

		rate := m.FeedRate
		if m.Type == MoveRapid || m.Type == MoveRetract {
			rate = RapidRate
		}
		if rate > 0 {
			s.EstimatedMinutes += m.Length() / rate
		}
	}
	return s
}
