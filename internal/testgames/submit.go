package testgames

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/diamondos/dugout/pkg/logger"
)

// submitPlays sends the home manager's reading for every play, then
// the away manager's, using a worker pool per pass. The first pass
// opens every slot; the second either resolves the slot or disputes
// it. Returns the event ids still disputed afterwards.
func submitPlays(ctx context.Context, config *Config, fixture *Fixture, plays []Play, stats *Stats) ([]string, error) {
	log.Printf("submitting %d plays with %d workers", len(plays), config.Workers)

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/events"

	var (
		submitted int64
		resolved  int64
		disputed  int64
		failed    int64
	)

	var mu sync.Mutex
	var disputedIDs []string

	// Two passes: the slot state machine needs the first input before
	// the second can resolve or dispute it.
	passes := []struct {
		userID string
		code   func(Play) string
	}{
		{fixture.HomeManagerID, func(p Play) string { return p.HomeCode }},
		{fixture.AwayManagerID, func(p Play) string { return p.AwayCode }},
	}

	for passIdx, pass := range passes {
		playChan := make(chan Play, config.Workers*2)
		var wg sync.WaitGroup

		for i := 0; i < config.Workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for play := range playChan {
					select {
					case <-ctx.Done():
						return
					default:
					}

					var ev eventResponse
					status, err := client.postJSON(ctx, url, pass.userID, submitRequest{
						GameID:      play.GameID,
						Inning:      play.Inning,
						IsTopInning: play.IsTopInning,
						PlayerID:    play.PlayerID,
						Code:        pass.code(play),
						RunsScored:  play.RunsScored,
						RBICount:    play.RBICount,
					}, &ev)

					atomic.AddInt64(&submitted, 1)
					switch {
					case err != nil || status >= http.StatusBadRequest:
						atomic.AddInt64(&failed, 1)
						if config.Verbose {
							log.Printf("submit failed (status %d): %v", status, err)
						}
					case ev.IsDisputed:
						atomic.AddInt64(&disputed, 1)
						mu.Lock()
						disputedIDs = append(disputedIDs, ev.ID)
						mu.Unlock()
					case ev.Status == "resolved":
						atomic.AddInt64(&resolved, 1)
					}
				}
			}()
		}

		for _, play := range plays {
			select {
			case <-ctx.Done():
				close(playChan)
				return nil, fmt.Errorf("context cancelled during submission: %w", ctx.Err())
			case playChan <- play:
			}
		}
		close(playChan)
		wg.Wait()

		if config.Verbose {
			log.Printf("pass %d complete: submitted=%d resolved=%d disputed=%d failed=%d",
				passIdx+1, atomic.LoadInt64(&submitted), atomic.LoadInt64(&resolved),
				atomic.LoadInt64(&disputed), atomic.LoadInt64(&failed))
		}
	}

	stats.PlaysSubmitted = int(atomic.LoadInt64(&submitted))
	stats.PlaysResolved = int(atomic.LoadInt64(&resolved))
	stats.PlaysDisputed = int(atomic.LoadInt64(&disputed))
	stats.PlaysFailed = int(atomic.LoadInt64(&failed))

	logger.Get().Info(ctx, "play submission completed",
		logger.Int("resolved", stats.PlaysResolved),
		logger.Int("disputed", stats.PlaysDisputed),
		logger.Int("failed", stats.PlaysFailed))
	return disputedIDs, nil
}

// ruleDisputes applies a commissioner ruling to every disputed event.
func ruleDisputes(ctx context.Context, config *Config, fixture *Fixture, disputedIDs []string, stats *Stats) error {
	if len(disputedIDs) == 0 {
		logger.Get().Info(ctx, "no disputes to rule")
		return nil
	}
	log.Printf("ruling %d disputes as commissioner", len(disputedIDs))

	client := newHTTPClient(config.Timeout)

	for _, eventID := range disputedIDs {
		select {
		case <-ctx.Done():
			return fmt.Errorf("context cancelled during rulings: %w", ctx.Err())
		default:
		}

		var ev eventResponse
		status, err := client.postJSON(ctx,
			config.BaseURL+"/events/"+eventID+"/resolve",
			fixture.CommissionerID,
			map[string]interface{}{"code": "1B", "runs_scored": 0, "rbi_count": 0},
			&ev)
		if err != nil || status != StatusOK {
			return fmt.Errorf("ruling on %s failed (status %d): %w", eventID, status, err)
		}
		stats.RulingsApplied++
		stats.PlaysResolved++
	}

	logger.Get().Info(ctx, "all disputes ruled", logger.Int("count", stats.RulingsApplied))
	return nil
}
