package system

import (
	"fmt"

	"github.com/julianstephens/labcita/internal/cli"
	"github.com/julianstephens/labcita/internal/validation"
)

// ValidateCmd checks the stored appointments for records the booking rules
// would have refused.
type ValidateCmd struct{}

func (cmd *ValidateCmd) Run(ctx *cli.Context) error {
	store, err := ctx.Appointments()
	if err != nil {
		return err
	}

	result := validation.New().ValidateAppointments(store.List(), store.Catalog())
	fmt.Println(result.FormatReport())
	if result.HasConflicts() {
		return fmt.Errorf("%d conflict(s) found", len(result.Conflicts))
	}
	return nil
}
