package cmdconsumer

import (
	"context"
	"errors"
	"fmt"

	"github.com/you-humble/mraos/internal/model"
	"github.com/you-humble/mraos/platform/kafka"
	"github.com/you-humble/mraos/platform/logger"
)

type Converter interface {
	CommandToModel(data []byte) (model.Command, error)
}

type FactoryService interface {
	AssignOperator(ctx context.Context, params model.AssignOperatorParams) (*model.WorkOrder, error)
	AssignMachine(ctx context.Context, params model.AssignMachineParams) (*model.WorkOrder, error)
	AcknowledgeAlert(ctx context.Context, alertID string) (*model.Alert, error)
	UpdateOperatorStatus(ctx context.Context, id string, status model.ResourceStatus) (*model.Operator, error)
	UpdateMachineStatus(ctx context.Context, id string, status model.ResourceStatus) (*model.Machine, error)
	UpdateWorkOrderStatus(ctx context.Context, id string, status model.WorkOrderStatus) (*model.WorkOrder, error)
}

type service struct {
	consumer kafka.Consumer
	conv     Converter
	svc      FactoryService
}

func NewCommandConsumer(
	consumer kafka.Consumer,
	conv Converter,
	svc FactoryService,
) *service {
	return &service{consumer: consumer, conv: conv, svc: svc}
}

func (s *service) RunCommandConsume(ctx context.Context) error {
	logger.Info(ctx, "Starting factory command consumer")

	if err := s.consumer.Consume(ctx, s.commandHandler); err != nil {
		logger.Error(ctx, "Consume from commands topic error", logger.ErrorF(err))
		return err
	}

	return nil
}

// commandHandler applies one command. Commands that cannot be decoded or that
// the factory rejects are logged and skipped so they are not redelivered.
func (s *service) commandHandler(ctx context.Context, msg kafka.Message) error {
	cmd, err := s.conv.CommandToModel(msg.Value)
	if err != nil {
		logger.Warn(ctx, "Skipping undecodable command", logger.Int64("offset", msg.Offset), logger.ErrorF(err))
		return nil
	}

	log := logger.With(
		logger.String("command", string(cmd.Kind)),
		logger.Int64("offset", msg.Offset),
	)

	err = s.execute(ctx, cmd)
	switch {
	case err == nil:
		log.Info(ctx, "Command applied")
		return nil
	case errors.Is(err, model.ErrNotFound),
		errors.Is(err, model.ErrValidation),
		errors.Is(err, model.ErrConflict):
		log.Warn(ctx, "Command rejected", logger.ErrorF(err))
		return nil
	default:
		log.Error(ctx, "Command failed", logger.ErrorF(err))
		return err
	}
}

func (s *service) execute(ctx context.Context, cmd model.Command) error {
	var err error

	switch cmd.Kind {
	case model.CommandAssignOperator:
		_, err = s.svc.AssignOperator(ctx, model.AssignOperatorParams{
			OperatorID:  cmd.OperatorID,
			WorkOrderID: cmd.WorkOrderID,
		})
	case model.CommandAssignMachine:
		_, err = s.svc.AssignMachine(ctx, model.AssignMachineParams{
			MachineID:   cmd.MachineID,
			WorkOrderID: cmd.WorkOrderID,
		})
	case model.CommandAcknowledgeAlert:
		_, err = s.svc.AcknowledgeAlert(ctx, cmd.AlertID)
	case model.CommandUpdateOperatorStatus:
		_, err = s.svc.UpdateOperatorStatus(ctx, cmd.OperatorID, model.ResourceStatus(cmd.Status))
	case model.CommandUpdateMachineStatus:
		_, err = s.svc.UpdateMachineStatus(ctx, cmd.MachineID, model.ResourceStatus(cmd.Status))
	case model.CommandUpdateWorkOrderStatus:
		_, err = s.svc.UpdateWorkOrderStatus(ctx, cmd.WorkOrderID, model.WorkOrderStatus(cmd.Status))
	default:
		return fmt.Errorf("%w %q", model.ErrUnknownCommand, cmd.Kind)
	}

	return err
}
