package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tomo4k1/tamenchan-bootcamp/core/domain/vo"
	"github.com/tomo4k1/tamenchan-bootcamp/runtime/game/engines/chinitsu"
)

func newWaitsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "waits <hand>",
		Short:   "计算待牌，例如 waits 1112345678999",
		Example: "  tamenchan waits 2345688",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hand, err := chinitsu.ParseHand(args[0])
			if err != nil {
				return err
			}
			if n := len(hand); n > 13 || n%3 != 1 {
				return fmt.Errorf("%w: hand must have 1, 4, 7, 10 or 13 tiles, got %d", chinitsu.ErrInvalidLength, n)
			}
			hand = chinitsu.SortHand(hand)
			waits := chinitsu.GetWaits(hand)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s  %s\n", chinitsu.FormatHand(hand), chinitsu.RenderHand(hand))
			if len(waits) == 0 {
				fmt.Fprintln(out, "不听牌")
				return nil
			}
			fmt.Fprintf(out, "待牌: %s (%d 种 %d 枚)\n", chinitsu.FormatHand(waits), len(waits), chinitsu.Ukeire(hand, waits))
			for _, w := range waits {
				printGroups(out, chinitsu.Glyph(w)+" "+strconv.Itoa(w), chinitsu.GetWinningDecomposition(hand, w))
			}
			return nil
		},
	}
}

func newClassifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify <hand>",
		Short: "判断完整手牌是否和牌",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hand, err := chinitsu.ParseHand(args[0])
			if err != nil {
				return err
			}
			hand = chinitsu.SortHand(hand)
			out := cmd.OutOrStdout()
			if !chinitsu.IsWinningHand(hand) {
				fmt.Fprintf(out, "%s: 未和牌\n", chinitsu.FormatHand(hand))
				return nil
			}
			form := "一般形"
			if chinitsu.IsSevenPairs(chinitsu.CountTiles(hand)) {
				form = "七对子"
			}
			fmt.Fprintf(out, "%s: 和牌 (%s)\n", chinitsu.FormatHand(hand), form)
			printGroups(out, "拆解", chinitsu.DecomposeHand(hand))
			return nil
		},
	}
}

func newDecomposeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decompose <hand> <tile>",
		Short: "手牌加和了牌的拆解",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			hand, err := chinitsu.ParseHand(args[0])
			if err != nil {
				return err
			}
			tile, err := strconv.Atoi(args[1])
			if err != nil || !chinitsu.IsValidTile(tile) {
				return fmt.Errorf("%w: %s", chinitsu.ErrInvalidTile, args[1])
			}
			groups := chinitsu.GetWinningDecomposition(chinitsu.SortHand(hand), tile)
			out := cmd.OutOrStdout()
			if len(groups) == 0 {
				fmt.Fprintf(out, "%s + %d: 未和牌\n", chinitsu.FormatHand(chinitsu.SortHand(hand)), tile)
				return nil
			}
			printGroups(out, fmt.Sprintf("%s + %d", chinitsu.FormatHand(chinitsu.SortHand(hand)), tile), groups)
			return nil
		},
	}
}

func newGenerateCmd() *cobra.Command {
	var (
		length      int
		difficulty  string
		count       int
		seed        uint64
		maxAttempts int
		asJSON      bool
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "随机出题",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := vo.ParseDifficulty(difficulty)
			if err != nil {
				return err
			}
			if count <= 0 {
				count = 1
			}
			out := cmd.OutOrStdout()
			if !asJSON {
				fmt.Fprintln(out, chinitsu.MessageLoading)
			}
			gen := chinitsu.NewGenerator(&chinitsu.Options{Seed: seed, MaxAttempts: maxAttempts})
			problems := make([]*chinitsu.Problem, 0, count)
			for i := 0; i < count; i++ {
				p, err := gen.Generate(length, d.MinWaits())
				if err != nil {
					return err
				}
				problems = append(problems, p)
			}

			if asJSON {
				enc := json.NewEncoder(out)
				for _, p := range problems {
					if err := enc.Encode(p); err != nil {
						return err
					}
				}
				return nil
			}
			fmt.Fprintln(out, chinitsu.MessageStart)
			for i, p := range problems {
				fmt.Fprintf(out, "%d. %s  %s  [%s] 待牌: %s\n", i+1, chinitsu.FormatHand(p.Hand), chinitsu.RenderHand(p.Hand), d, chinitsu.FormatHand(p.Waits))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&length, "length", "n", chinitsu.DefaultLength, "手牌张数 (7, 10, 13)")
	cmd.Flags().StringVarP(&difficulty, "difficulty", "d", strconv.Itoa(int(vo.DefaultDifficulty)), "难度 1~3 或 easy/normal/hard")
	cmd.Flags().IntVar(&count, "count", 1, "题目数量")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "随机种子，0 表示随机")
	cmd.Flags().IntVar(&maxAttempts, "maxAttempts", chinitsu.DefaultMaxAttempts, "每道题最多尝试次数")
	cmd.Flags().BoolVar(&asJSON, "json", false, "每行输出一道 JSON")
	return cmd
}

func printGroups(out io.Writer, title string, groups []chinitsu.Group) {
	parts := make([]string, 0, len(groups))
	for _, g := range groups {
		parts = append(parts, g.String())
	}
	fmt.Fprintf(out, "  %s: %s\n", title, strings.Join(parts, " "))
}
