package core

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/voidshard/easel/pkg/database"
)

// Overall job progress by stage. Remote execution is scaled into [progressRendered, progressExecuted].
const (
	progressUploaded = 10
	progressRendered = 20
	progressExecuted = 90
)

// progress writes a job's progress, only when the integer percent changes.
type progress struct {
	ctx context.Context
	db  database.Database
	id  string
	log zerolog.Logger

	lock sync.Mutex
	last int
}

func newProgress(ctx context.Context, db database.Database, id string, log zerolog.Logger) *progress {
	return &progress{ctx: ctx, db: db, id: id, log: log}
}

func (p *progress) set(pct int) {
	if pct < 0 {
		pct = 0
	} else if pct > 100 {
		pct = 100
	}

	p.lock.Lock()
	if pct <= p.last {
		p.lock.Unlock()
		return
	}
	p.last = pct
	p.lock.Unlock()

	if err := p.db.SetJobProgress(p.ctx, p.id, pct); err != nil {
		p.log.Debug().Err(err).Int("progress", pct).Msg("failed to write progress")
	}
}

// written records a value that was saved some other way.
func (p *progress) written(pct int) {
	p.lock.Lock()
	defer p.lock.Unlock()
	if pct > p.last {
		p.last = pct
	}
}

// remote maps the compute server's value/max into the execution stage.
func (p *progress) remote(value, max int) {
	p.set(remoteProgress(value, max))
}

func remoteProgress(value, max int) int {
	if max <= 0 || value < 0 {
		return progressRendered
	}
	if value > max {
		value = max
	}
	return progressRendered + value*(progressExecuted-progressRendered)/max
}
