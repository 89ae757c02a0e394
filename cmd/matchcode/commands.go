package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"heenenweer/internal/app"
	"heenenweer/internal/codec"
	"heenenweer/internal/domain"
)

func newEncodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encode [file]",
		Short: "Pack a structured match (JSON file or stdin) into a share code",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			data, err := io.ReadAll(in)
			if err != nil {
				return fmt.Errorf("failed to read match: %w", err)
			}
			var m domain.Match
			if err := json.Unmarshal(data, &m); err != nil {
				return fmt.Errorf("failed to parse match: %w", err)
			}
			log.WithFields(log.Fields{"name": m.Name, "players": len(m.Players), "rounds": len(m.Rounds)}).Debug("encoding match")

			code, err := app.ShareCode(&m)
			if err != nil {
				return err
			}
			log.WithField("length", len(code)).Debug("encoded share code")
			fmt.Fprintln(cmd.OutOrStdout(), code)
			return nil
		},
	}
}

func newDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <code>",
		Short: "Print the structured match behind a share code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := app.ParseShareCode(args[0])
			if err != nil {
				return err
			}
			log.WithField("currentRound", m.CurrentRound()).Debug("decoded match")

			out, err := json.MarshalIndent(m, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <code>",
		Short: "Describe the packed record behind a share code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := app.ParseShareRecord(args[0])
			if err != nil {
				return err
			}
			data, err := rec.MarshalBinary()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "name:          %q\n", rec.Name)
			fmt.Fprintf(w, "bytes:         %d (%d bits)\n", len(data), rec.BitLen())
			fmt.Fprintf(w, "start dealer:  %d\n", rec.StartDealer)
			fmt.Fprintf(w, "current round: %d\n", rec.CurrentRound)
			for i, p := range rec.Players {
				fmt.Fprintf(w, "player %d:      %q (%d bid bits)\n", i, p, rec.Bids[i].BitLen())
			}
			for round := 1; round <= domain.NumRounds; round++ {
				c := codec.CodecForRound(round)
				fmt.Fprintf(w, "round %2d: cards=%2d trump=%-8s bids=%s/%d tricks=%#x %v\n",
					round, domain.CardsInRound(round), rec.Trumps[round-1], c.Scheme, c.Bits,
					rec.Tricks.Get(round), rec.Tricks.Tricks(round))
			}
			return nil
		},
	}
}
