package service

import "errors"

var (
	// ErrClientClosed is returned by Client and Instance RPCs after Client.Close.
	ErrClientClosed = errors.New("pim client is closed")
	// ErrInstanceDeleted is returned by Instance.Update and Instance.WaitForReady after a successful Delete.
	ErrInstanceDeleted = errors.New("instance is deleted")
)
