package service

import (
	"context"
	"errors"
	"testing"

	"salon/internal/domain"
)

func TestTimeBlockService_CreateRejectsOverlap(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()

	appointment, err := f.book(at(testMonday, 9, 0))
	if err != nil {
		t.Fatalf("book returned error: %v", err)
	}

	_, err = f.services.TimeBlock.Create(ctx, employeeActor, domain.CreateTimeBlockDTO{
		EmployeeID: employeeID,
		Kind:       domain.TimeBlockBreak,
		StartTime:  at(testMonday, 9, 30),
		EndTime:    at(testMonday, 10, 30),
	})
	var conflictErr *domain.ConflictError
	if !errors.As(err, &conflictErr) || conflictErr.Events[0].ID != appointment.ID {
		t.Fatalf("expected conflict with the booking, got %v", err)
	}

	block, err := f.services.TimeBlock.Create(ctx, employeeActor, domain.CreateTimeBlockDTO{
		EmployeeID: employeeID,
		Kind:       domain.TimeBlockBreak,
		StartTime:  at(testMonday, 10, 0),
		EndTime:    at(testMonday, 10, 30),
		Reason:     PointerTo("kawa"),
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if block.CreatedBy != employeeUserID {
		t.Fatalf("expected createdBy to be the actor, got %d", block.CreatedBy)
	}

	if _, err := f.book(at(testMonday, 10, 15)); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("booking over a time block must conflict, got %v", err)
	}
	if _, err := f.book(at(testMonday, 10, 30)); err != nil {
		t.Fatalf("booking after the block returned error: %v", err)
	}
}

func TestTimeBlockService_Validation(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()

	cases := []struct {
		name  string
		actor domain.Actor
		dto   domain.CreateTimeBlockDTO
		err   error
	}{
		{
			name:  "client",
			actor: clientActor,
			dto:   domain.CreateTimeBlockDTO{EmployeeID: employeeID, Kind: domain.TimeBlockOther, StartTime: at(testMonday, 9, 0), EndTime: at(testMonday, 10, 0)},
			err:   domain.ErrForbidden,
		},
		{
			name:  "unknown kind",
			actor: adminActor,
			dto:   domain.CreateTimeBlockDTO{EmployeeID: employeeID, Kind: "nap", StartTime: at(testMonday, 9, 0), EndTime: at(testMonday, 10, 0)},
			err:   domain.ErrValidation,
		},
		{
			name:  "empty interval",
			actor: adminActor,
			dto:   domain.CreateTimeBlockDTO{EmployeeID: employeeID, Kind: domain.TimeBlockOther, StartTime: at(testMonday, 9, 0), EndTime: at(testMonday, 9, 0)},
			err:   domain.ErrValidation,
		},
		{
			name:  "unknown employee",
			actor: adminActor,
			dto:   domain.CreateTimeBlockDTO{EmployeeID: 42, Kind: domain.TimeBlockOther, StartTime: at(testMonday, 9, 0), EndTime: at(testMonday, 10, 0)},
			err:   domain.ErrNotFound,
		},
	}

	for _, tc := range cases {
		if _, err := f.services.TimeBlock.Create(ctx, tc.actor, tc.dto); !errors.Is(err, tc.err) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.err, err)
		}
	}
}

func TestTimeBlockService_ListAndDelete(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()

	block, err := f.services.TimeBlock.Create(ctx, adminActor, domain.CreateTimeBlockDTO{
		EmployeeID: employeeID,
		Kind:       domain.TimeBlockTraining,
		StartTime:  at(testMonday, 13, 0),
		EndTime:    at(testMonday, 15, 0),
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if _, err := f.services.TimeBlock.List(ctx, employeeID, at(testMonday, 18, 0), at(testMonday, 8, 0)); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("inverted range must fail validation, got %v", err)
	}

	blocks, err := f.services.TimeBlock.List(ctx, employeeID, testMonday, testMonday.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(blocks) != 1 || blocks[0].ID != block.ID {
		t.Fatalf("unexpected blocks %+v", blocks)
	}

	if err := f.services.TimeBlock.Delete(ctx, clientActor, block.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("client must not delete blocks, got %v", err)
	}
	if err := f.services.TimeBlock.Delete(ctx, employeeActor, block.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if err := f.services.TimeBlock.Delete(ctx, employeeActor, block.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}
