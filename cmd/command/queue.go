package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"online_queue/internal/config"
	"online_queue/internal/queue"
	"online_queue/internal/storage"
)

type QueueCommand struct {
	Logger *log.Logger
}

func (cmd QueueCommand) Command(ctx context.Context, cfg *config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:   "queue",
		Short: "manage queues",
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "create NAME",
			Short: "create a queue",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(c *cobra.Command, args []string) error {
				return cmd.withService(cfg, func(svc *queue.Service) error {
					id, err := svc.CreateQueue(ctx, strings.Join(args, " "))
					if err != nil {
						return err
					}
					fmt.Fprintln(c.OutOrStdout(), id)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "list queues with their members",
			Args:  cobra.NoArgs,
			RunE: func(c *cobra.Command, _ []string) error {
				return cmd.withService(cfg, func(svc *queue.Service) error {
					queues, err := svc.ListQueues(ctx)
					if err != nil {
						return err
					}
					out := c.OutOrStdout()
					for _, q := range queues {
						fmt.Fprintf(out, "%d\t%s\t%d members\n", q.ID, q.Name, len(q.Members))
						for i, m := range q.Members {
							fmt.Fprintf(out, "\t#%d\tentry %d\tuser %d\t%s\n", i+1, m.ID, m.UserID, m.Timestamp.Format("2006-01-02 15:04:05"))
						}
					}
					return nil
				})
			},
		},
	)

	return root
}

// withService открывает базу на время одной команды. Уведомления не нужны:
// create и list их не публикуют.
func (cmd QueueCommand) withService(cfg *config.Config, fn func(svc *queue.Service) error) error {
	db, err := storage.ConnectDatabase(cfg, cmd.Logger)
	if err != nil {
		return errors.Wrap(err, "queue : failed to connect to database")
	}
	defer storage.Close(db)

	return fn(queue.NewService(storage.NewQueueStore(db), nil, queue.DefaultOptions(), cmd.Logger))
}
