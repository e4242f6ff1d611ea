package service

import (
	"github.com/ansys/pypim/domain"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// instanceErrorFromGRPC maps a PIM service error about instanceName: NotFound (possibly wrapped) becomes
// InstanceNotFound wrapping the original status; nil and every other error are returned as-is.
//
// Called from Client.GetInstance, Instance.Update and Instance.Delete.
func instanceErrorFromGRPC(instanceName string, err error) error {
	if err == nil {
		return nil
	}
	if status.Code(err) == codes.NotFound {
		return domain.NewInstanceNotFoundError(instanceName, err)
	}
	return err
}
