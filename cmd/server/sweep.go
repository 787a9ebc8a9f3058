package main

import (
	"bufio"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/onekill0503/dnd-bot/internal/config"
	"github.com/onekill0503/dnd-bot/internal/redis"
	sessionrepo "github.com/onekill0503/dnd-bot/internal/repositories/session"
)

var sweepYes bool

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Find and delete unreadable session snapshots in redis",
	RunE:  runSweep,
}

func init() {
	sweepCmd.Flags().StringVar(&redisAddr, "redis", "", "Redis address or URL (overrides DND_REDIS_ADDR)")
	sweepCmd.Flags().BoolVar(&sweepYes, "yes", false, "delete without asking")
}

func runSweep(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Parse(envFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if redisAddr != "" {
		cfg.RedisAddr = redisAddr
	}
	if cfg.RedisAddr == "" {
		return fmt.Errorf("no redis configured")
	}

	client, err := newRedisClient(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	ctx := cmd.Context()
	if err := redis.Ping(ctx, client, 5*time.Second); err != nil {
		return fmt.Errorf("failed to reach redis: %w", err)
	}

	out, err := sessionrepo.Sweep(ctx, client, sessionrepo.SweepInput{})
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Checked %d snapshots, found %d corrupted\n", out.Checked, len(out.Corrupted))
	if len(out.Corrupted) == 0 {
		return nil
	}
	for _, key := range out.Corrupted {
		fmt.Fprintf(w, "  - %s\n", key)
	}

	if !sweepYes {
		fmt.Fprint(w, "Delete these snapshots? (yes/no): ")
		answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if strings.TrimSpace(answer) != "yes" {
			fmt.Fprintln(w, "Aborted, no changes made")
			return nil
		}
	}

	out, err = sessionrepo.Sweep(ctx, client, sessionrepo.SweepInput{Delete: true})
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Deleted %d snapshots\n", out.Deleted)
	return nil
}
