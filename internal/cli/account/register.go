package account

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/labcita/internal/cli"
	"github.com/julianstephens/labcita/internal/models"
	"github.com/julianstephens/labcita/internal/registration"
)

const minPasswordLength = 8

var (
	ErrAlreadyRegistered = errors.New("a lab is already registered, use --force to replace it")
	ErrWeakPassword      = fmt.Errorf("admin password must be at least %d characters", minPasswordLength)
)

type RegisterCmd struct {
	LabName     string   `help:"Lab name. The interactive wizard runs when omitted."`
	Ruc         string   `help:"Tax id (RUC)."`
	Phone       string   `help:"Lab phone."`
	Email       string   `help:"Lab contact email."`
	Address     string   `help:"Lab address."`
	Description string   `help:"Short lab description."`
	Exam        []string `help:"Offered exam (repeatable)."`
	Plan        string   `help:"Plan id (basico, profesional, enterprise)." default:"profesional"`
	Users       int      `help:"Number of users." default:"5"`
	Lease       int      `help:"Lease length in months (1, 3, 6, 12, 24)." default:"12"`
	AdminName   string   `help:"Administrator name."`
	AdminEmail  string   `help:"Administrator email, used to log in."`
	Password    string   `help:"Administrator password. Prompted when omitted." env:"LABCITA_ADMIN_PASSWORD"`
	Force       bool     `help:"Replace an existing registration."`
}

func (c *RegisterCmd) Run(ctx *cli.Context) error {
	mgr, err := ctx.Session()
	if err != nil {
		return err
	}
	if mgr.IsRegistered() && !c.Force {
		return ErrAlreadyRegistered
	}

	w := registration.NewWizard()
	if ctx.Clock != nil {
		w.SetClock(ctx.Clock)
	}

	if c.LabName == "" {
		if err := runWizard(w); err != nil {
			return err
		}
	} else {
		c.fill(w)
	}

	quote, err := w.Quote()
	if err != nil {
		return err
	}

	password := c.Password
	if password == "" {
		if password, err = promptPassword(); err != nil {
			return err
		}
	}
	if len(password) < minPasswordLength {
		return ErrWeakPassword
	}

	reg, err := w.Pay()
	if err != nil {
		return err
	}
	if err := mgr.CompleteRegistration(reg, password); err != nil {
		return err
	}

	title, msg := registration.CompletedMessage(reg)
	fmt.Printf("✓ %s\n", title)
	fmt.Printf("  %s\n", msg)
	fmt.Printf("  %s\n", quote)
	fmt.Printf("  Lease expires: %s\n", reg.LeaseExpiresAt)
	fmt.Printf("Log in with: labcita login --email %s\n", reg.Plan.Admin.Email)
	return nil
}

func (c *RegisterCmd) fill(w *registration.Wizard) {
	r := &w.Registration
	r.Lab = models.LabProfile{
		Name:        c.LabName,
		RUC:         c.Ruc,
		Phone:       c.Phone,
		Email:       c.Email,
		Address:     c.Address,
		Description: c.Description,
	}
	r.Exams = append([]string(nil), c.Exam...)
	r.Plan.PlanID = c.Plan
	r.Plan.Users = c.Users
	r.Plan.LeaseMonths = c.Lease
	r.Plan.Admin = models.AdminAccount{Name: c.AdminName, Email: c.AdminEmail}
}

// runWizard walks the registration steps with huh, re-asking a step until
// it validates.
func runWizard(w *registration.Wizard) error {
	users := strconv.Itoa(w.Registration.Plan.Users)
	confirmed := true

	for {
		form := stepForm(w, &users, &confirmed)
		if err := form.Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return errors.New("registration cancelled")
			}
			return err
		}

		if w.Step == registration.StepPlan {
			n, err := strconv.Atoi(strings.TrimSpace(users))
			if err != nil {
				fmt.Println("⚠ Ingrese un número de usuarios válido.")
				continue
			}
			w.Registration.Plan.Users = n
		}

		if w.Step == registration.StepConfirm {
			if !confirmed {
				return errors.New("registration cancelled")
			}
			return nil
		}

		var se *registration.StepError
		if err := w.Next(); errors.As(err, &se) {
			fmt.Printf("⚠ %s\n  %s\n", se.Title, se.Message)
		} else if err != nil {
			return err
		}
	}
}

func stepForm(w *registration.Wizard, users *string, confirmed *bool) *huh.Form {
	r := &w.Registration
	title := fmt.Sprintf("Paso %d de %d: %s", w.Step+1, len(registration.StepLabels), registration.StepLabels[w.Step])

	switch w.Step {
	case registration.StepLab:
		return huh.NewForm(huh.NewGroup(
			huh.NewNote().Title(title),
			huh.NewInput().Title("Nombre del laboratorio").Value(&r.Lab.Name),
			huh.NewInput().Title("RUC").Value(&r.Lab.RUC),
			huh.NewInput().Title("Teléfono").Value(&r.Lab.Phone),
			huh.NewInput().Title("Email").Value(&r.Lab.Email),
			huh.NewInput().Title("Dirección").Value(&r.Lab.Address),
			huh.NewText().Title("Descripción").Value(&r.Lab.Description),
		))
	case registration.StepExams:
		var options []huh.Option[string]
		for _, cat := range registration.ExamCategories {
			for _, exam := range cat.Exams {
				options = append(options, huh.NewOption(fmt.Sprintf("%s · %s", cat.Name, exam), exam))
			}
		}
		return huh.NewForm(huh.NewGroup(
			huh.NewNote().Title(title),
			huh.NewMultiSelect[string]().
				Title("Exámenes ofrecidos").
				Options(options...).
				Height(12).
				Value(&r.Exams),
		))
	case registration.StepPlan:
		plans := make([]huh.Option[string], 0, len(registration.Plans))
		for _, p := range registration.Plans {
			plans = append(plans, huh.NewOption(fmt.Sprintf("%s (%s, usuarios: %s)", p.Name, p.PriceLabel(), p.UsersLabel()), p.ID))
		}
		leases := make([]huh.Option[int], 0, len(registration.LeaseOptions))
		for _, l := range registration.LeaseOptions {
			leases = append(leases, huh.NewOption(l.Label(), l.Months))
		}
		return huh.NewForm(huh.NewGroup(
			huh.NewNote().Title(title),
			huh.NewSelect[string]().Title("Plan").Options(plans...).Value(&r.Plan.PlanID),
			huh.NewInput().Title("Número de usuarios").Value(users),
			huh.NewSelect[int]().Title("Duración del contrato").Options(leases...).Value(&r.Plan.LeaseMonths),
			huh.NewInput().Title("Nombre del administrador").Value(&r.Plan.Admin.Name),
			huh.NewInput().Title("Email del administrador").Value(&r.Plan.Admin.Email),
		))
	default:
		summary := "Precio no disponible"
		if q, err := w.Quote(); err == nil {
			summary = q.String()
		}
		return huh.NewForm(huh.NewGroup(
			huh.NewNote().
				Title(title).
				Description(fmt.Sprintf("%s\n%d exámenes\n%s", r.Lab.Name, len(r.Exams), summary)),
			huh.NewConfirm().
				Title("¿Confirmar pago y registrar?").
				Affirmative("Pagar").
				Negative("Cancelar").
				Value(confirmed),
		))
	}
}

func promptPassword() (string, error) {
	var password, repeat string
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Contraseña del administrador").
			EchoMode(huh.EchoModePassword).
			Validate(func(s string) error {
				if len(s) < minPasswordLength {
					return ErrWeakPassword
				}
				return nil
			}).
			Value(&password),
		huh.NewInput().
			Title("Repita la contraseña").
			EchoMode(huh.EchoModePassword).
			Validate(func(s string) error {
				if s != password {
					return errors.New("las contraseñas no coinciden")
				}
				return nil
			}).
			Value(&repeat),
	))
	if err := form.Run(); err != nil {
		return "", err
	}
	return password, nil
}
