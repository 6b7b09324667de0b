package command

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"online_queue/internal/auth"
	"online_queue/internal/config"
	"online_queue/internal/response"
)

type TokenCommand struct {
	Logger *log.Logger
}

func (cmd TokenCommand) Command(ctx context.Context, cfg *config.Config) *cobra.Command {
	var (
		ttl    time.Duration
		asJSON bool
	)

	issue := &cobra.Command{
		Use:   "issue USER_ID",
		Short: "issue an access token for a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			if cfg.JWTAccessSecret == "" {
				return errors.New("token : JWT_ACCESS_SECRET is not set")
			}
			userID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return errors.Wrapf(err, "token : invalid user id %q", args[0])
			}

			token, err := auth.NewJWTVerifier(cfg.JWTAccessSecret).IssueToken(userID, ttl)
			if err != nil {
				return err
			}

			cmd.Logger.WithContext(ctx).WithFields(log.Fields{"user_id": userID, "ttl": ttl}).Debug("token issued")
			if asJSON {
				return json.NewEncoder(c.OutOrStdout()).Encode(response.TokenResponse{AccessToken: token})
			}
			fmt.Fprintln(c.OutOrStdout(), token)
			return nil
		},
	}
	issue.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	issue.Flags().BoolVar(&asJSON, "json", false, "print the token as {\"access_token\": ...}")

	root := &cobra.Command{
		Use:   "token",
		Short: "manage access tokens",
	}
	root.AddCommand(issue)
	return root
}
