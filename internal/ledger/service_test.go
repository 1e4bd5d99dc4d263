package ledger_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/dfarias/fincontrol/internal/ledger"
)

func TestService_Create(t *testing.T) {
	params := ledger.SplitParams{
		Description:  "Notebook",
		Amount:       300000,
		DueDate:      time.Date(2025, time.May, 10, 0, 0, 0, 0, time.UTC),
		Type:         ledger.TypeDespesa,
		CategoryID:   1,
		ContactID:    1,
		AccountID:    1,
		Split:        true,
		Installments: 3,
	}

	type testCase struct {
		name      string
		params    ledger.SplitParams
		setupMock func(repo *ledger.MockRepository, tx *ledger.MockBatchTx)
		wantLen   int
		wantErr   error
	}

	tests := []testCase{
		{
			name:   "SuccessSplitsAndCommits",
			params: params,
			setupMock: func(repo *ledger.MockRepository, tx *ledger.MockBatchTx) {
				repo.EXPECT().BeginCreate(gomock.Any()).Return(tx, nil)
				tx.EXPECT().
					CreateEntries(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, entries []*ledger.Entry) error {
						require.Len(t, entries, 3)

						var sum int64
						for i, e := range entries {
							e.ID = int64(i + 1)
							sum += e.Amount
						}

						assert.Equal(t, int64(300000), sum)

						return nil
					})
				tx.EXPECT().Commit().Return(nil)
				tx.EXPECT().Rollback().Return(errors.New("already committed"))
			},
			wantLen: 3,
		},
		{
			name: "InvalidInputNeverTouchesRepo",
			params: ledger.SplitParams{
				Description:  "Notebook",
				Amount:       -1,
				Type:         ledger.TypeDespesa,
				Installments: 1,
			},
			setupMock: func(repo *ledger.MockRepository, tx *ledger.MockBatchTx) {},
			wantErr:   ledger.ErrInvalidInput,
		},
		{
			name:   "BeginError",
			params: params,
			setupMock: func(repo *ledger.MockRepository, tx *ledger.MockBatchTx) {
				repo.EXPECT().BeginCreate(gomock.Any()).Return(nil, errors.New("db down"))
			},
			wantErr: errors.New("db down"),
		},
		{
			name:   "InsertErrorRollsBack",
			params: params,
			setupMock: func(repo *ledger.MockRepository, tx *ledger.MockBatchTx) {
				repo.EXPECT().BeginCreate(gomock.Any()).Return(tx, nil)
				tx.EXPECT().CreateEntries(gomock.Any(), gomock.Any()).Return(errors.New("insert failed"))
				tx.EXPECT().Rollback().Return(nil)
			},
			wantErr: errors.New("insert failed"),
		},
		{
			name:   "CommitErrorRollsBack",
			params: params,
			setupMock: func(repo *ledger.MockRepository, tx *ledger.MockBatchTx) {
				repo.EXPECT().BeginCreate(gomock.Any()).Return(tx, nil)
				tx.EXPECT().CreateEntries(gomock.Any(), gomock.Any()).Return(nil)
				tx.EXPECT().Commit().Return(errors.New("commit failed"))
				tx.EXPECT().Rollback().Return(nil)
			},
			wantErr: errors.New("commit failed"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := ledger.NewMockRepository(ctrl)
			tx := ledger.NewMockBatchTx(ctrl)
			tt.setupMock(repo, tx)

			svc := ledger.NewService(repo)
			got, err := svc.Create(context.Background(), tt.params)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr.Error())
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Len(t, got, tt.wantLen)
		})
	}
}

func TestService_MarkPaid(t *testing.T) {
	paidOn := time.Date(2025, time.May, 12, 0, 0, 0, 0, time.UTC)

	type testCase struct {
		name      string
		setupMock func(m *ledger.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "PendingBecomesPaid",
			setupMock: func(m *ledger.MockRepository) {
				m.EXPECT().GetEntry(gomock.Any(), int64(7)).
					Return(&ledger.Entry{ID: 7, Status: ledger.StatusPendente}, nil)
				m.EXPECT().UpdateStatus(gomock.Any(), int64(7), ledger.StatusPago, &paidOn).Return(nil)
			},
		},
		{
			name: "OverdueBecomesPaid",
			setupMock: func(m *ledger.MockRepository) {
				m.EXPECT().GetEntry(gomock.Any(), int64(7)).
					Return(&ledger.Entry{ID: 7, Status: ledger.StatusVencido}, nil)
				m.EXPECT().UpdateStatus(gomock.Any(), int64(7), ledger.StatusPago, &paidOn).Return(nil)
			},
		},
		{
			name: "CancelledCannotBePaid",
			setupMock: func(m *ledger.MockRepository) {
				m.EXPECT().GetEntry(gomock.Any(), int64(7)).
					Return(&ledger.Entry{ID: 7, Status: ledger.StatusCancelado}, nil)
			},
			wantErr: ledger.ErrInvalidTransition,
		},
		{
			name: "AlreadyPaid",
			setupMock: func(m *ledger.MockRepository) {
				m.EXPECT().GetEntry(gomock.Any(), int64(7)).
					Return(&ledger.Entry{ID: 7, Status: ledger.StatusPago}, nil)
			},
			wantErr: ledger.ErrInvalidTransition,
		},
		{
			name: "NotFound",
			setupMock: func(m *ledger.MockRepository) {
				m.EXPECT().GetEntry(gomock.Any(), int64(7)).Return(nil, ledger.ErrNotFound)
			},
			wantErr: ledger.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := ledger.NewMockRepository(ctrl)
			tt.setupMock(repo)

			svc := ledger.NewService(repo)
			got, err := svc.MarkPaid(context.Background(), 7, paidOn)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, ledger.StatusPago, got.Status)
			require.NotNil(t, got.PaymentDate)
			assert.True(t, got.PaymentDate.Equal(paidOn))
		})
	}
}

func TestService_Cancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	svc := ledger.NewService(repo)

	t.Run("PendingBecomesCancelled", func(t *testing.T) {
		repo.EXPECT().GetEntry(gomock.Any(), int64(3)).
			Return(&ledger.Entry{ID: 3, Status: ledger.StatusPendente}, nil)
		repo.EXPECT().UpdateStatus(gomock.Any(), int64(3), ledger.StatusCancelado, gomock.Nil()).Return(nil)

		got, err := svc.Cancel(context.Background(), 3)
		require.NoError(t, err)
		assert.Equal(t, ledger.StatusCancelado, got.Status)
	})

	t.Run("PaidCannotBeCancelled", func(t *testing.T) {
		repo.EXPECT().GetEntry(gomock.Any(), int64(3)).
			Return(&ledger.Entry{ID: 3, Status: ledger.StatusPago}, nil)

		got, err := svc.Cancel(context.Background(), 3)
		assert.ErrorIs(t, err, ledger.ErrInvalidTransition)
		assert.Nil(t, got)
	})
}

func TestService_MarkOverdue(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	asOf := time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)

	repo := ledger.NewMockRepository(ctrl)
	repo.EXPECT().MarkOverdue(gomock.Any(), asOf).Return(int64(4), nil)

	svc := ledger.NewService(repo)

	n, err := svc.MarkOverdue(context.Background(), asOf)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
}

func TestService_Attachments(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	svc := ledger.NewService(repo)

	t.Run("AddRequiresExistingEntry", func(t *testing.T) {
		repo.EXPECT().GetEntry(gomock.Any(), int64(9)).Return(nil, ledger.ErrNotFound)

		err := svc.AddAttachment(context.Background(), &ledger.Attachment{EntryID: 9, FileName: "nf.pdf"})
		assert.ErrorIs(t, err, ledger.ErrNotFound)
	})

	t.Run("AddStoresMetadata", func(t *testing.T) {
		att := &ledger.Attachment{EntryID: 9, FileName: "nf.pdf", StoredPath: "uploads/abc.pdf"}

		repo.EXPECT().GetEntry(gomock.Any(), int64(9)).
			Return(&ledger.Entry{ID: 9, Status: ledger.StatusPendente}, nil)
		repo.EXPECT().AddAttachment(gomock.Any(), att).Return(nil)

		require.NoError(t, svc.AddAttachment(context.Background(), att))
	})
}
