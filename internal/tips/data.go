package tips

import "budgetapp/internal/core"

// registry is the fixed tip dataset. Keep ids and ordering stable.
var registry = []core.Tip{
	{
		ID:          "tip-budget-50-30-20",
		Category:    core.Budgeting,
		Title:       "Use the 50/30/20 Rule",
		Description: "Allocate 50% needs, 30% wants, 20% saving/debt to keep spending balanced.",
		Content:     "Allocate 50% of net income to needs, 30% to wants, and 20% to saving or debt payoff.",
		Actionable:  "List last month’s net income, apply percentages, and adjust categories today.",
		Difficulty:  "easy",
	},
	{
		ID:          "tip-track-small",
		Category:    core.Budgeting,
		Title:       "Track Small Purchases",
		Description: "Small daily expenses add up—log them to curb impulse spending.",
		Content:     "Minor daily expenses (coffee, snacks) can add up. Logging them raises awareness and curbs impulse spending.",
		Actionable:  "Track every sub-$10 spend for one week in a note.",
		Difficulty:  "easy",
	},
	{
		ID:          "tip-emergency-fund",
		Category:    core.Saving,
		Title:       "Build an Emergency Fund",
		Description: "Target 3–6 months essential expenses in a high-yield account.",
		Content:     "Aim for 3–6 months of essential expenses in a separate high-yield savings account for resilience.",
		Actionable:  "Open a high-yield savings account and set an automatic weekly transfer.",
		Difficulty:  "moderate",
	},
	{
		ID:          "tip-round-up",
		Category:    core.Saving,
		Title:       "Automate Round-Ups",
		Description: "Round transactions and save the difference—micro-savings add up.",
		Content:     "Use a tool that rounds transactions and saves the difference—effortless micro-savings accumulate.",
		Actionable:  "Enable round-up feature in your banking or fintech app today.",
		Difficulty:  "easy",
	},
	{
		ID:          "tip-debt-snowball",
		Category:    core.Debt,
		Title:       "Try the Debt Snowball",
		Description: "Attack smallest balance debts first for momentum.",
		Content:     "Pay smallest balances first for motivational wins while making minimums on others, then roll payments forward.",
		Actionable:  "List debts by balance; pay the smallest aggressively this month.",
		Difficulty:  "moderate",
	},
	{
		ID:          "tip-debt-avalanche",
		Category:    core.Debt,
		Title:       "Or Use Debt Avalanche",
		Description: "Pay highest interest rate debt first to reduce interest cost.",
		Content:     "Target the highest interest rate debt first to minimize total interest paid over time.",
		Actionable:  "Sort debts by APR; increase payment to top APR account.",
		Difficulty:  "advanced",
	},
	{
		ID:          "tip-invest-index",
		Category:    core.Investing,
		Title:       "Favor Broad Index Funds",
		Description: "Low-cost diversified index funds beat most active strategies net of fees.",
		Content:     "Low-cost diversified index funds often outperform frequent stock picking after fees.",
		Actionable:  "Compare total expense ratios; shift one holding to a broad index fund.",
		Difficulty:  "moderate",
	},
	{
		ID:          "tip-invest-auto",
		Category:    core.Investing,
		Title:       "Automate Contributions",
		Description: "Recurring transfers enforce discipline and dollar-cost averaging.",
		Content:     "Set recurring transfers to investment accounts to enforce consistency and dollar-cost averaging.",
		Actionable:  "Schedule an automatic monthly transfer after next payday.",
		Difficulty:  "easy",
	},
	{
		ID:          "tip-mindset-delay",
		Category:    core.Mindset,
		Title:       "Delay Gratification",
		Description: "A 24h pause before wants kills impulse buys.",
		Content:     "Waiting 24 hours before non-essential purchases filters out emotional spending.",
		Actionable:  "Add desired item to a list and revisit tomorrow.",
		Difficulty:  "easy",
	},
	{
		ID:          "tip-mindset-incremental",
		Category:    core.Mindset,
		Title:       "Think Incrementally",
		Description: "Small 1% improvements compound heavily over time.",
		Content:     "Small, repeatable improvements (1% gains) compound into large financial progress over time.",
		Actionable:  "Pick one recurring bill and reduce it by a few percent.",
		Difficulty:  "easy",
	},
}
