package cron_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gocrud/wiremap"
	"github.com/gocrud/wiremap/core"
	"github.com/gocrud/wiremap/cron"
)

func wireCron(t *testing.T, b *cron.Builder, extra wiremap.Defs) *core.Injector {
	t.Helper()
	if extra == nil {
		extra = wiremap.Defs{}
	}
	defs, err := wiremap.Compose(extra, b)
	require.NoError(t, err)
	root, err := wiremap.Wire(defs)
	require.NoError(t, err)
	return root
}

func TestSchedulerRegistersJobs(t *testing.T) {
	b := cron.New().
		AddFunc("@every 1h", "hourly", func() {}).
		AddFunc("@every 24h", "daily", func() {})

	root := wireCron(t, b, nil)
	svc := root.MustGet("cron.scheduler").(*cron.Service)
	assert.Len(t, svc.Cron().Entries(), 2)
}

func TestJobRunsWithInjector(t *testing.T) {
	seen := make(chan string, 1)
	b := cron.New().AddJob("@every 10ms", "probe", func(root *core.Injector) {
		select {
		case seen <- root.MustGet("env").(string):
		default:
		}
	})

	root := wireCron(t, b, wiremap.Defs{"env": "test"})
	svc := root.MustGet("cron.scheduler").(*cron.Service)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = svc.Start(ctx)
	}()

	select {
	case v := <-seen:
		assert.Equal(t, "test", v)
	case <-time.After(2 * time.Second):
		t.Fatal("job never ran")
	}

	cancel()
	<-done
	require.NoError(t, svc.Stop(context.Background()))
}

func TestInvalidSpecFailsResolution(t *testing.T) {
	b := cron.New().AddFunc("not a spec", "bad", func() {})
	root := wireCron(t, b, nil)

	_, err := root.Get("cron.scheduler")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid spec")
}

func TestValidation(t *testing.T) {
	_, err := cron.New().AddFunc("", "x", func() {}).Defs()
	require.Error(t, err)

	_, err = cron.New().AddFunc("@hourly", "", func() {}).Defs()
	require.Error(t, err)

	_, err = cron.New().AddJob("@hourly", "x", nil).Defs()
	require.Error(t, err)
}

func TestWithSeconds(t *testing.T) {
	b := cron.New(cron.WithSeconds()).AddFunc("*/1 * * * * *", "tick", func() {})
	root := wireCron(t, b, nil)

	svc := root.MustGet("cron.scheduler").(*cron.Service)
	assert.Len(t, svc.Cron().Entries(), 1)
}
