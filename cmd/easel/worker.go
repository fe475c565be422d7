package main

import (
	"os"
	"os/signal"
	"syscall"
)

const (
	docWorker = `Run Easel background worker`
)

type optsWorker struct {
	optsGeneral
	optsDatabase
	optsQueue
	optsCompute
	optsStorage
}

func (c *optsWorker) Execute(args []string) error {
	// This processes queued jobs: pre-upload, render, execute & persist. Any number of workers
	// may run against the same database & queue.
	log := c.logger()

	svc, err := newWorker(&log, &c.optsDatabase, &c.optsQueue, &c.optsCompute, &c.optsStorage)
	if err != nil {
		return err
	}

	errs := make(chan error, 1)
	go func() {
		errs <- svc.Run()
	}()

	exit := make(chan os.Signal, 1)
	signal.Notify(exit, os.Interrupt, syscall.SIGTERM)

	select {
	case err = <-errs:
		log.Error().Err(err).Msg("worker stopped")
		svc.Close()
		return err
	case <-exit:
	}

	// in flight jobs are given the queue's shutdown timeout to finish
	log.Info().Msg("shutting down")
	err = svc.Close()
	<-errs
	return err
}
