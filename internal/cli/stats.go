package cli

import (
	"fmt"
	"sort"

	"github.com/sakif/yawmiyat/internal/model"
)

type StatsCmd struct {
	UserFlag
}

func (c *StatsCmd) Run(ctx *Context) error {
	user, err := c.resolve(ctx)
	if err != nil {
		return err
	}
	stats, err := ctx.Journal.Stats(ctx.Ctx, user.ID)
	if err != nil {
		return err
	}

	fmt.Fprintln(ctx.Out, titleStyle.Render("Journal of "+user.Name))
	fmt.Fprintln(ctx.Out, row("Entries", stats.TotalEntries))
	fmt.Fprintln(ctx.Out, row("Current streak", stats.Streak))
	fmt.Fprintln(ctx.Out, row("Longest streak", stats.LongestStreak))
	fmt.Fprintln(ctx.Out, row("Avg words per entry", stats.AverageWordsPerEntry))

	if len(stats.MoodsCount) > 0 {
		fmt.Fprintln(ctx.Out)
		fmt.Fprintln(ctx.Out, titleStyle.Render("Moods"))
		for _, m := range model.Moods {
			if n := stats.MoodsCount[m]; n > 0 {
				fmt.Fprintln(ctx.Out, row(m.Icon()+" "+m.Arabic(), n))
			}
		}
	}

	if len(stats.TagsUsed) > 0 {
		fmt.Fprintln(ctx.Out)
		fmt.Fprintln(ctx.Out, titleStyle.Render("Tags"))
		for _, name := range sortedTags(stats.TagsUsed) {
			fmt.Fprintln(ctx.Out, row("#"+name, stats.TagsUsed[name]))
		}
	}
	return nil
}

// sortedTags orders tag names by use count, most used first.
func sortedTags(used map[string]int) []string {
	names := make([]string, 0, len(used))
	for name := range used {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if used[names[i]] != used[names[j]] {
			return used[names[i]] > used[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}

type StreakCmd struct {
	UserFlag
}

func (c *StreakCmd) Run(ctx *Context) error {
	user, err := c.resolve(ctx)
	if err != nil {
		return err
	}
	stats, err := ctx.Journal.Stats(ctx.Ctx, user.ID)
	if err != nil {
		return err
	}

	if stats.Streak == 0 {
		fmt.Fprintln(ctx.Out, "No entry today yet. Longest streak:", stats.LongestStreak)
		return nil
	}
	fmt.Fprintln(ctx.Out, streakStyle.Render(fmt.Sprintf("🔥 %d day streak", stats.Streak)))
	return nil
}
