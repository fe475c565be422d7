package main

import (
	"github.com/voidshard/easel/pkg/api/http/server"
)

const (
	docApi = `Run the API server`
)

type optsAPI struct {
	optsGeneral
	optsDatabase
	optsQueue
	optsCompute
	optsStorage

	Addr    string `long:"addr" env:"ADDR" description:"Address to bind to" default:"localhost:8100"`
	TLSCert string `long:"cert" env:"CERT" description:"Path to TLS certificate"`
	TLSKey  string `long:"key" env:"KEY" description:"Path to TLS key"`

	ServeMedia bool `long:"serve-media" env:"SERVE_MEDIA" description:"Serve stored media files under /media/"`
}

func (c *optsAPI) Execute(args []string) error {
	// This serves the API over HTTP so callers can submit & follow jobs. It queues jobs but
	// does not process them; run one or more workers for that.
	log := c.logger()

	svc, err := newWorker(&log, &c.optsDatabase, &c.optsQueue, &c.optsCompute, &c.optsStorage)
	if err != nil {
		return err
	}
	defer svc.Close()

	mediaDir := ""
	if c.ServeMedia {
		mediaDir = c.MediaDir
	}

	s := server.NewServer(c.Addr, mediaDir, c.TLSCert, c.TLSKey, c.Debug, log)
	return s.ServeForever(svc)
}
