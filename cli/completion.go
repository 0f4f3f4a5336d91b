package cli

import (
	"context"

	"github.com/posener/complete/v2"
	"github.com/warp/inventory-engine/ledger"
	"github.com/warp/inventory-engine/store/sqlite"
)

// Completer describes the CLI for bash/zsh/fish completion. Install
// with `COMP_INSTALL=1 inv` (see posener/complete docs).
func Completer() *complete.Command {
	dims := dimensionPredictor{}
	none := complete.PredictFunc(predictNothing)
	dateFlags := map[string]complete.Predictor{"date": none, "note": none}

	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"db":     none,
			"config": none,
			"actor":  none,
		},
		Sub: map[string]*complete.Command{
			"add": {
				Args:  dims,
				Flags: merge(dateFlags, map[string]complete.Predictor{"cost": none}),
			},
			"sell": {
				Args:  dims,
				Flags: merge(dateFlags, map[string]complete.Predictor{"price": none, "force": none}),
			},
			"adjust": {
				Args:  dims,
				Flags: dateFlags,
			},
			"undo":      {},
			"inventory": {Flags: map[string]complete.Predictor{"low": none}},
			"history": {
				Args:  dims,
				Flags: map[string]complete.Predictor{"n": none},
			},
			"report": {Flags: map[string]complete.Predictor{"s": none, "e": none, "days": none}},
			"dims":   {Flags: map[string]complete.Predictor{"q": dims}},
			"export": {
				Args:  complete.PredictFunc(func(string) []string { return []string{"transactions", "stock"} }),
				Flags: map[string]complete.Predictor{"o": none},
			},
		},
	}
}

func predictNothing(string) []string { return nil }

func merge(maps ...map[string]complete.Predictor) map[string]complete.Predictor {
	out := map[string]complete.Predictor{}
	for _, m := range maps {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}

// dimensionPredictor completes dimension arguments from the ledger
// itself. Completion runs before flag parsing, so it reads the
// default database path; errors just mean no suggestions.
type dimensionPredictor struct{}

func (dimensionPredictor) Predict(prefix string) []string {
	st, err := sqlite.New(*dbFile)
	if err != nil {
		return nil
	}
	defer st.Close()

	dims, err := st.Dimensions(context.Background())
	if err != nil {
		return nil
	}
	if prefix == "" {
		return dims
	}
	return ledger.Suggest(prefix, dims)
}
