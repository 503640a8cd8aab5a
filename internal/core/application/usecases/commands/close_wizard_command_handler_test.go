package commands_test

import (
	"errors"
	"testing"

	"bikerental/internal/core/application/usecases/commands"
	"bikerental/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCloseWizardCommandHandler_Handle(t *testing.T) {
	t.Run("should delete the session", func(t *testing.T) {
		ctx := t.Context()
		id := kernel.NewUUID()
		cmd, _ := commands.NewCloseWizardCommand(id)

		repo := new(MockWizardRepository)
		uow := new(MockWizardUoW)
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("WizardRepository").Return(repo).Once(),
			repo.On("Delete", mock.Anything, id).Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)
		factory := new(MockWizardUoWFactory)
		factory.On("Create").Return(uow).Once()

		h := commands.NewCloseWizardCommandHandler(factory)
		require.NoError(t, h.Handle(ctx, cmd))
		repo.AssertExpectations(t)
		uow.AssertExpectations(t)
	})

	t.Run("should surface begin error", func(t *testing.T) {
		ctx := t.Context()
		cmd, _ := commands.NewCloseWizardCommand(kernel.NewUUID())

		uow := new(MockWizardUoW)
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once()
		factory := new(MockWizardUoWFactory)
		factory.On("Create").Return(uow).Once()

		h := commands.NewCloseWizardCommandHandler(factory)
		require.Error(t, h.Handle(ctx, cmd))
	})
}
