package sspanel

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/iyouport-org/sspanel/pkg/store"
	"github.com/iyouport-org/sspanel/pkg/webapi"
	"github.com/spf13/cobra"
)

var AccountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage proxy accounts",
}

var accountCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Provision an account for a user",
	RunE:  accountCreateExec,
}

var accountSubCmd = &cobra.Command{
	Use:   "sub",
	Short: "Print the subscription of an account",
	RunE:  accountSubExec,
}

var accountRequest webapi.PostAccountRequest

var accountSubID uint

func init() {
	flags := accountCreateCmd.Flags()
	flags.UintVar(&accountRequest.UserID, "user-id", 0, "id of the panel user")
	flags.IntVar(&accountRequest.Port, "port", 0, "port, allocated when 0")
	flags.StringVar(&accountRequest.Password, "password", "", "password, random when empty")
	flags.StringVar(&accountRequest.Method, "method", "", "cipher name")
	flags.StringVar(&accountRequest.Protocol, "protocol", "", "protocol name")
	flags.StringVar(&accountRequest.Obfs, "obfs", "", "obfs name")
	flags.UintVar(&accountRequest.Level, "level", 0, "account level")
	_ = accountCreateCmd.MarkFlagRequired("user-id")

	accountSubCmd.Flags().UintVar(&accountSubID, "id", 0, "account id")
	_ = accountSubCmd.MarkFlagRequired("id")

	AccountCmd.AddCommand(accountCreateCmd)
	AccountCmd.AddCommand(accountSubCmd)
}

func accountCreateExec(cmd *cobra.Command, args []string) error {
	return withRepository(func(ctx context.Context, repo *store.Repository) error {
		acc := repo.Settings().NewAccount(accountRequest.UserID)
		accountRequest.Apply(acc)
		if err := repo.CreateAccount(ctx, acc); err != nil {
			return err
		}
		out, err := json.MarshalIndent(webapi.GetAccount(acc, false), "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return err
	})
}

func accountSubExec(cmd *cobra.Command, args []string) error {
	return withRepository(func(ctx context.Context, repo *store.Repository) error {
		acc, err := repo.GetAccount(ctx, accountSubID)
		if err != nil {
			return err
		}
		sub, err := repo.Subscription(ctx, acc)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), sub)
		return err
	})
}
