// Package filter compiles expression-language predicates evaluated against
// ranking rows, so CLI users can narrow down top and search results
// client-side.
package filter

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/top-stats/topstats-go/topstats"
)

// BotFilter is a compiled predicate over ranking rows.
type BotFilter struct {
	program    *vm.Program
	expression string
}

// Compile parses a filter expression such as
// "ServerCount > 1000 && contains(Name, 'music')".
func Compile(expression string) (*BotFilter, error) {
	if strings.TrimSpace(expression) == "" {
		return nil, fmt.Errorf("empty filter expression")
	}

	program, err := expr.Compile(expression,
		expr.Env(environment(topstats.PartialBot{})),
		expr.AsBool(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compile filter expression: %w", err)
	}

	return &BotFilter{
		program:    program,
		expression: expression,
	}, nil
}

// Expression returns the original filter expression.
func (f *BotFilter) Expression() string {
	return f.expression
}

// Match evaluates the filter against one ranking row.
func (f *BotFilter) Match(bot topstats.PartialBot) (bool, error) {
	result, err := expr.Run(f.program, environment(bot))
	if err != nil {
		return false, fmt.Errorf("failed to evaluate filter: %w", err)
	}

	matched, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("filter expression did not produce a boolean")
	}
	return matched, nil
}

// Apply returns the rows matching the filter, preserving their order.
func (f *BotFilter) Apply(bots []topstats.PartialBot) ([]topstats.PartialBot, error) {
	matches := make([]topstats.PartialBot, 0, len(bots))
	for _, bot := range bots {
		ok, err := f.Match(bot)
		if err != nil {
			return nil, err
		}
		if ok {
			matches = append(matches, bot)
		}
	}
	return matches, nil
}

// environment exposes a ranking row's fields and a few string helpers to the
// expression language.
func environment(bot topstats.PartialBot) map[string]any {
	return map[string]any{
		"ID":           bot.ID,
		"Name":         bot.Name,
		"ServerCount":  bot.ServerCount.Value,
		"ShardCount":   bot.ShardCount.Value,
		"MonthlyVotes": bot.MonthlyVotes.Value,
		"TotalVotes":   bot.TotalVotes.Value,
		"Rank": func(metric string) int {
			switch metric {
			case "shard_count":
				return bot.ShardCount.Rank
			case "monthly_votes":
				return bot.MonthlyVotes.Rank
			case "total_votes":
				return bot.TotalVotes.Rank
			default:
				return bot.ServerCount.Rank
			}
		},
		"contains": func(str, substr string) bool {
			return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
		},
		"startsWith": func(str, prefix string) bool {
			return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
		},
		"lower": strings.ToLower,
	}
}
