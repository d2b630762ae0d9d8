package core

import (
	"context"

	"suinocore/pkg/domain"
)

// RegisterEmployee creates an Ativo employee. The matricula is the unique
// external key; reusing one fails with a DuplicateKeyError.
func (s *Service) RegisterEmployee(ctx context.Context, employee Employee) (Employee, Result, error) {
	var created Employee
	res, err := s.run(ctx, "register_employee", func(tx domain.Transaction) error {
		if employee.Matricula == "" {
			return domain.ValidationError{Field: "matricula", Reason: "required"}
		}
		if employee.Name == "" {
			return domain.ValidationError{Field: "name", Reason: "required"}
		}
		if _, exists := tx.Snapshot().FindEmployeeByMatricula(employee.Matricula); exists {
			return domain.DuplicateKeyError{Entity: domain.EntityEmployee, Key: employee.Matricula}
		}
		if employee.Status == "" {
			employee.Status = domain.EmployeeActive
		}
		if employee.AdmissionDate.IsZero() {
			employee.AdmissionDate = s.today()
		}
		var err error
		created, err = tx.CreateEmployee(employee)
		return err
	})
	return created, res, err
}

// UpdateEmployeeStatus mutates the employment status of the matricula.
func (s *Service) UpdateEmployeeStatus(ctx context.Context, matricula string, status domain.EmployeeStatus) (Employee, Result, error) {
	var updated Employee
	res, err := s.run(ctx, "update_employee_status", func(tx domain.Transaction) error {
		employee, ok := tx.Snapshot().FindEmployeeByMatricula(matricula)
		if !ok {
			return domain.NotFoundError{Entity: domain.EntityEmployee, Key: matricula}
		}
		var err error
		updated, err = tx.UpdateEmployee(employee.ID, func(e *Employee) error {
			e.Status = status
			return nil
		})
		return err
	})
	return updated, res, err
}

// Authenticate resolves a matricula to its employee record. Only Ativo
// employees authenticate; success stamps the last access time.
func (s *Service) Authenticate(ctx context.Context, matricula string) (Employee, Result, error) {
	var authenticated Employee
	res, err := s.run(ctx, "authenticate", func(tx domain.Transaction) error {
		employee, ok := tx.Snapshot().FindEmployeeByMatricula(matricula)
		if !ok {
			return domain.AuthError{Matricula: matricula, Reason: "unknown matricula"}
		}
		if employee.Status != domain.EmployeeActive {
			return domain.AuthError{Matricula: matricula, Reason: "employee is not Ativo"}
		}
		now := s.now()
		var err error
		authenticated, err = tx.UpdateEmployee(employee.ID, func(e *Employee) error {
			e.LastAccess = &now
			return nil
		})
		return err
	})
	return authenticated, res, err
}
