package appointment

import (
	"context"
	"errors"

	patientDomain "github.com/BruksfildServices01/clinic-tracker/internal/domain/patient"
	serviceDomain "github.com/BruksfildServices01/clinic-tracker/internal/domain/service"
	"github.com/BruksfildServices01/clinic-tracker/internal/httperr"
)

// refChecker confirms that the patient and service an appointment points at exist.
type refChecker struct {
	patients patientDomain.Repository
	services serviceDomain.Repository
}

func (rc refChecker) check(ctx context.Context, p parsed, v *httperr.ValidationError) error {
	if p.patientID != 0 {
		if _, err := rc.patients.GetByID(ctx, p.patientID); err != nil {
			if !errors.Is(err, patientDomain.ErrNotFound) {
				return err
			}
			v.Add("patient_id", "Select a valid patient.")
		}
	} else if !v.Has("patient_id") {
		v.Add("patient_id", "Select a valid patient.")
	}

	if p.serviceID != 0 {
		if _, err := rc.services.GetByID(ctx, p.serviceID); err != nil {
			if !errors.Is(err, serviceDomain.ErrNotFound) {
				return err
			}
			v.Add("service_id", "Select a valid service.")
		}
	} else if !v.Has("service_id") {
		v.Add("service_id", "Select a valid service.")
	}

	return nil
}
