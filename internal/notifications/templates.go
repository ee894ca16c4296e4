package notifications

import (
	"fmt"

	pkgerrors "github.com/bhopalpolice/armory-backend/pkg/errors"
)

const dateLayout = "2006-01-02"

// renderMessage produces the full SMS text for a recipient. Wording
// follows the department's standing notice formats.
func renderMessage(kind Kind, name string, p TemplateParams) (string, error) {
	switch kind {
	case KindCollectionNotice:
		if err := requireParams(p.CollectionPoint != "", !p.Deadline.IsZero()); err != nil {
			return "", err
		}
		return fmt.Sprintf(
			"Dear %s, As per government orders, please submit your licensed weapon to %s by %s. Contact: %s. - Bhopal Police",
			name, p.CollectionPoint, p.Deadline.Format(dateLayout), p.Contact,
		), nil
	case KindReminder:
		if err := requireParams(p.CollectionPoint != "", !p.Deadline.IsZero()); err != nil {
			return "", err
		}
		return fmt.Sprintf(
			"Reminder: %s, your weapon submission deadline is approaching (%s). Please visit %s immediately. - Bhopal Police",
			name, p.Deadline.Format(dateLayout), p.CollectionPoint,
		), nil
	case KindReturnNotice:
		if err := requireParams(p.CollectionPoint != "", !p.ReturnDate.IsZero()); err != nil {
			return "", err
		}
		return fmt.Sprintf(
			"Dear %s, you may collect your submitted weapon from %s after %s. Bring ID proof. - Bhopal Police",
			name, p.CollectionPoint, p.ReturnDate.Format(dateLayout),
		), nil
	}
	return "", pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown message kind %q", kind))
}

func requireParams(conditions ...bool) error {
	for _, ok := range conditions {
		if !ok {
			return pkgerrors.New(pkgerrors.CodeValidation, "collection point and date are required for this message kind")
		}
	}
	return nil
}
