package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Rorical/RoriStake/internal/chain"
	"github.com/Rorical/RoriStake/internal/config"
	"github.com/Rorical/RoriStake/internal/notify"
	"github.com/Rorical/RoriStake/internal/stake"
)

var (
	stakeWallet string
	stakeAmount string
)

var stakeCmd = &cobra.Command{
	Use:   "stake",
	Short: "Submit one stake without the interactive dialog",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if !cfg.IsValid() {
			return fmt.Errorf("profile '%s' has no base URL", cfg.ActiveProfile)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		client := chain.New(cfg.GetBaseURL(), cfg.GetTimeout())
		sink := notify.Writer{W: cmd.OutOrStdout()}
		return runStake(ctx, client, sink, stakeWallet, stakeAmount)
	},
}

// runStake drives the dialog controller the same way the TUI does.
func runStake(ctx context.Context, submitter stake.Submitter, sink notify.Sink, walletID, amount string) error {
	var staked bool
	ctrl := stake.New(func(walletID string, amount float64) {
		staked = true
		sink.Notify(notify.New(notify.Info, "Staked "+walletID+": "+strconv.FormatFloat(amount, 'f', -1, 64)))
	}, sink, submitter)

	ctrl.Open()
	ctrl.UpdateWalletID(walletID)
	if amount != "" {
		ctrl.UpdateAmount(amount)
	}

	outcome, err := ctrl.Confirm(ctx)
	if err != nil {
		return err
	}
	if outcome != stake.OutcomeStaked || !staked {
		return fmt.Errorf("stake not accepted")
	}
	return nil
}

func init() {
	stakeCmd.Flags().StringVarP(&stakeWallet, "wallet", "w", "", "wallet ID to stake from")
	stakeCmd.Flags().StringVarP(&stakeAmount, "amount", "a", "", "amount of tokens (default 10)")
	stakeCmd.SilenceUsage = true
	rootCmd.AddCommand(stakeCmd)
}
