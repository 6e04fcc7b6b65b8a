package services_test

import (
	"context"
	"testing"

	"github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/apperrors"
	"github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/core/domain"
	portssvc "github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/core/ports/services"
	"github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/core/services"
	"github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ProvidentFundServiceTestSuite struct {
	suite.Suite
	pfRepo     *MockProvidentFundRepository
	rosterRepo *MockAttendanceRepository
	service    portssvc.ProvidentFundService
	ctx        context.Context
	teacher    *domain.Person
}

func (suite *ProvidentFundServiceTestSuite) SetupTest() {
	suite.pfRepo = new(MockProvidentFundRepository)
	suite.rosterRepo = new(MockAttendanceRepository)
	suite.service = services.NewProvidentFundService(suite.pfRepo, suite.rosterRepo)
	suite.ctx = context.Background()
	suite.teacher = &domain.Person{PersonID: "t1", PersonType: domain.PersonTeacher, Name: "Rahim"}
}

func TestProvidentFundServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProvidentFundServiceTestSuite))
}

func (suite *ProvidentFundServiceTestSuite) history() []domain.ProvidentFundTransaction {
	return []domain.ProvidentFundTransaction{
		{TransactionID: "p1", TeacherID: "t1", Type: domain.PFOpening, EmployeeContribution: dec("500"), EmployerContribution: dec("500"), Date: date("2024-01-01")},
		{TransactionID: "p2", TeacherID: "t1", Type: domain.PFContribution, EmployeeContribution: dec("300"), EmployerContribution: dec("200"), Date: date("2024-02-01")},
		{TransactionID: "p3", TeacherID: "t1", Type: domain.PFWithdrawal, TotalAmount: dec("500"), Date: date("2024-03-01")},
	}
}

func (suite *ProvidentFundServiceTestSuite) TestLedger_RunningBalance() {
	suite.rosterRepo.On("FindPerson", suite.ctx, domain.PersonTeacher, "t1").Return(suite.teacher, nil).Once()
	suite.pfRepo.On("ListByTeacher", suite.ctx, "t1").Return(suite.history(), nil).Once()

	ledger, err := suite.service.Ledger(suite.ctx, "t1")

	suite.Require().NoError(err)
	suite.Equal("Rahim", ledger.TeacherName)
	suite.Require().Len(ledger.Lines, 3)
	suite.True(dec("1000").Equal(ledger.Lines[0].Balance))
	suite.True(dec("1500").Equal(ledger.Lines[1].Balance))
	suite.True(dec("1000").Equal(ledger.Balance))
	suite.True(dec("800").Equal(ledger.TotalEmployee))
	suite.True(dec("700").Equal(ledger.TotalEmployer))
	suite.True(dec("500").Equal(ledger.TotalWithdrawn))
	suite.Empty(ledger.Warnings)
}

func (suite *ProvidentFundServiceTestSuite) TestLedger_UnknownTeacher() {
	suite.rosterRepo.On("FindPerson", suite.ctx, domain.PersonTeacher, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	ledger, err := suite.service.Ledger(suite.ctx, "ghost")

	suite.Nil(ledger)
	suite.ErrorIs(err, apperrors.ErrUnknownPerson)
}

func (suite *ProvidentFundServiceTestSuite) TestRecordContribution_Success() {
	req := dto.PFContributionRequest{EmployeeContribution: dec("250"), EmployerContribution: dec("250"), Date: "2024-04-01"}

	suite.rosterRepo.On("FindPerson", suite.ctx, domain.PersonTeacher, "t1").Return(suite.teacher, nil).Once()
	suite.pfRepo.On("SaveTransaction", suite.ctx, mock.MatchedBy(func(t domain.ProvidentFundTransaction) bool {
		return t.Type == domain.PFContribution && t.TotalAmount.Equal(dec("500")) && t.CreatedBy == "accountant"
	})).Return(nil).Once()

	txn, err := suite.service.RecordContribution(suite.ctx, "t1", req, "accountant")

	suite.Require().NoError(err)
	suite.NotEmpty(txn.TransactionID)
	suite.True(date("2024-04-01").Equal(txn.Date))
	suite.pfRepo.AssertExpectations(suite.T())
}

func (suite *ProvidentFundServiceTestSuite) TestRecordOpening_Duplicate() {
	req := dto.PFContributionRequest{EmployeeContribution: dec("100"), Date: "2024-01-01"}

	suite.rosterRepo.On("FindPerson", suite.ctx, domain.PersonTeacher, "t1").Return(suite.teacher, nil).Once()
	suite.pfRepo.On("ListByTeacher", suite.ctx, "t1").Return(suite.history(), nil).Once()

	txn, err := suite.service.RecordOpening(suite.ctx, "t1", req, "accountant")

	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.pfRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *ProvidentFundServiceTestSuite) TestRecordWithdrawal_Success() {
	req := dto.PFWithdrawalRequest{TotalAmount: dec("1000"), Date: "2024-04-01"}

	suite.rosterRepo.On("FindPerson", suite.ctx, domain.PersonTeacher, "t1").Return(suite.teacher, nil).Once()
	suite.pfRepo.On("SaveChecked", suite.ctx, mock.AnythingOfType("domain.ProvidentFundTransaction")).Return(suite.history(), nil).Once()

	txn, err := suite.service.RecordWithdrawal(suite.ctx, "t1", req, "accountant")

	suite.Require().NoError(err)
	suite.Equal(domain.PFWithdrawal, txn.Type)
	suite.True(dec("-1000").Equal(txn.Effect()))
	suite.pfRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *ProvidentFundServiceTestSuite) TestRecordWithdrawal_Validation() {
	testCases := []struct {
		name    string
		amount  string
		history bool
	}{
		{name: "zero amount", amount: "0"},
		{name: "negative amount", amount: "-5"},
		{name: "exceeds balance", amount: "1000.01", history: true},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			suite.SetupTest()
			if tc.history {
				suite.rosterRepo.On("FindPerson", suite.ctx, domain.PersonTeacher, "t1").Return(suite.teacher, nil).Once()
				suite.pfRepo.On("SaveChecked", suite.ctx, mock.Anything).Return(suite.history(), nil).Once()
			}

			txn, err := suite.service.RecordWithdrawal(suite.ctx, "t1", dto.PFWithdrawalRequest{TotalAmount: dec(tc.amount), Date: "2024-04-01"}, "accountant")

			suite.Nil(txn)
			suite.ErrorIs(err, apperrors.ErrValidation)
			suite.pfRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
		})
	}
}

func (suite *ProvidentFundServiceTestSuite) TestRecordWithdrawal_ChecksLedgerReadUnderLock() {
	// Another withdrawal of 600 committed before this one acquired the lock.
	ledger := append(suite.history(), domain.ProvidentFundTransaction{
		TransactionID: "p4", TeacherID: "t1", Type: domain.PFWithdrawal, TotalAmount: dec("600"), Date: date("2024-04-01"),
	})
	suite.rosterRepo.On("FindPerson", suite.ctx, domain.PersonTeacher, "t1").Return(suite.teacher, nil).Once()
	suite.pfRepo.On("SaveChecked", suite.ctx, mock.Anything).Return(ledger, nil).Once()

	txn, err := suite.service.RecordWithdrawal(suite.ctx, "t1", dto.PFWithdrawalRequest{TotalAmount: dec("600"), Date: "2024-04-01"}, "accountant")

	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorContains(err, "exceeds balance 400.00")
	suite.pfRepo.AssertNotCalled(suite.T(), "ListByTeacher", mock.Anything, mock.Anything)
}

func (suite *ProvidentFundServiceTestSuite) TestRecordWithdrawal_RepositoryFailures() {
	testCases := []struct {
		name     string
		repoErr  error
		expected error
	}{
		{name: "teacher removed before lock", repoErr: apperrors.ErrNotFound, expected: apperrors.ErrUnknownPerson},
		{name: "write failure", repoErr: assert.AnError, expected: assert.AnError},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			suite.SetupTest()
			suite.rosterRepo.On("FindPerson", suite.ctx, domain.PersonTeacher, "t1").Return(suite.teacher, nil).Once()
			suite.pfRepo.On("SaveChecked", suite.ctx, mock.Anything).Return(nil, tc.repoErr).Once()

			txn, err := suite.service.RecordWithdrawal(suite.ctx, "t1", dto.PFWithdrawalRequest{TotalAmount: dec("10"), Date: "2024-04-01"}, "accountant")

			suite.Nil(txn)
			suite.ErrorIs(err, tc.expected)
		})
	}
}

func (suite *ProvidentFundServiceTestSuite) TestRecordContribution_RejectsNegative() {
	req := dto.PFContributionRequest{EmployeeContribution: dec("-1"), EmployerContribution: dec("10"), Date: "2024-04-01"}

	txn, err := suite.service.RecordContribution(suite.ctx, "t1", req, "accountant")

	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrValidation)
}
