package mapping

import (
	"github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/core/domain"
	"github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/models"
)

// ToModelPFTransaction converts a domain PF entry to a model row
func ToModelPFTransaction(d domain.ProvidentFundTransaction) models.ProvidentFundTransaction {
	return models.ProvidentFundTransaction{
		TransactionID:        d.TransactionID,
		TeacherID:            d.TeacherID,
		TransactionType:      string(d.Type),
		EmployeeContribution: d.EmployeeContribution,
		EmployerContribution: d.EmployerContribution,
		TotalAmount:          d.TotalAmount,
		TransactionDate:      domain.TruncateDate(d.Date),
		Notes:                nullable(d.Notes),
		AuditFields:          ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPFTransaction converts a model row to a domain PF entry
func ToDomainPFTransaction(m models.ProvidentFundTransaction) domain.ProvidentFundTransaction {
	return domain.ProvidentFundTransaction{
		TransactionID:        m.TransactionID,
		TeacherID:            m.TeacherID,
		Type:                 domain.PFTransactionType(m.TransactionType),
		EmployeeContribution: m.EmployeeContribution,
		EmployerContribution: m.EmployerContribution,
		TotalAmount:          m.TotalAmount,
		Date:                 domain.TruncateDate(m.TransactionDate),
		Notes:                deref(m.Notes),
		AuditFields:          ToDomainAuditFields(m.AuditFields),
	}
}
