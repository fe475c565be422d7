package api

import (
	"github.com/voidshard/easel/internal/core"
	"github.com/voidshard/easel/pkg/comfy"
	"github.com/voidshard/easel/pkg/database"
	"github.com/voidshard/easel/pkg/media"
	"github.com/voidshard/easel/pkg/queue"
)

// New connects to the database & queue and returns an API backed by a ComfyUI compatible
// compute client and a media store on local disk.
func New(dbOpts *database.Options, qOpts *queue.Options, cOpts *comfy.Options, opts *Options) (Worker, error) {
	if opts == nil {
		opts = OptionsDefault()
	}
	opts.SetDefaults()
	if qOpts == nil {
		qOpts = &queue.Options{}
	}
	if qOpts.Logger == nil {
		qOpts.Logger = opts.Logger
	}
	if cOpts == nil {
		cOpts = &comfy.Options{}
	}
	if cOpts.Logger == nil {
		cOpts.Logger = opts.Logger
	}

	store, err := media.NewFileStore(opts.MediaDir)
	if err != nil {
		return nil, err
	}

	db, err := database.NewPostgres(dbOpts)
	if err != nil {
		return nil, err
	}

	qu, err := queue.NewAsynqQueue(qOpts)
	if err != nil {
		db.Close()
		return nil, err
	}

	return NewAPI(db, qu, comfy.New(cOpts), store, opts)
}

// NewAPI builds the API over the given backends.
func NewAPI(db database.Database, qu queue.Queue, compute core.Compute, store media.Store, opts *Options) (Worker, error) {
	if opts == nil {
		opts = OptionsDefault()
	}
	opts.SetDefaults()

	persister := media.NewPersister(store, db, opts.MediaBaseURL, opts.Logger.With().Str("component", "media").Logger())
	return core.NewService(db, qu, compute, media.NewLibrary(store, db), persister, &core.Options{
		MaxRetries: opts.MaxRetries,
		Logger:     opts.Logger,
	})
}
