package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/roach88/limitbreak/internal/solver"
)

// ParseInt parses one integer flag value. Values outside int64 are
// OutOfRange solver errors; anything else malformed is a usage error.
func ParseInt(name, s string) (int64, error) {
	s = strings.TrimSpace(s)
	v, err := strconv.ParseInt(s, 10, 64)
	if err == nil {
		return v, nil
	}
	if errors.Is(err, strconv.ErrRange) {
		return 0, &solver.Error{
			Code:    solver.CodeOutOfRange,
			Message: "value does not fit in a signed 64-bit integer",
			Details: map[string]string{name: s},
		}
	}
	return 0, WrapExitError(ExitCommandError, fmt.Sprintf("invalid --%s %q", name, s), errors.New("not an integer"))
}

// ParseCoins parses a comma-separated coin list. Whitespace around tokens
// is ignored and an empty string is the empty list.
//
//	ParseCoins("1, 2,5") // []int64{1, 2, 5}
func ParseCoins(s string) ([]int64, error) {
	if strings.TrimSpace(s) == "" {
		return []int64{}, nil
	}
	tokens := strings.Split(s, ",")
	coins := make([]int64, 0, len(tokens))
	for i, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			return nil, NewExitError(ExitCommandError, fmt.Sprintf("invalid --coins: empty value at position %d", i))
		}
		v, err := ParseInt(fmt.Sprintf("coins[%d]", i), tok)
		if err != nil {
			return nil, err
		}
		coins = append(coins, v)
	}
	return coins, nil
}

// problemFlags are the input flags shared by solve and bench.
type problemFlags struct {
	Target        string
	MaxCoins      string
	Coins         string
	AllowNegative bool
}

func (f *problemFlags) problem() (solver.Problem, error) {
	target, err := ParseInt("target", f.Target)
	if err != nil {
		return solver.Problem{}, err
	}
	maxCoins, err := ParseInt("max-coins", f.MaxCoins)
	if err != nil {
		return solver.Problem{}, err
	}
	coins, err := ParseCoins(f.Coins)
	if err != nil {
		return solver.Problem{}, err
	}
	return solver.Problem{Target: target, MaxCoins: maxCoins, Coins: coins}, nil
}
