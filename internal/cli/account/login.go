package account

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/labcita/internal/cli"
	"github.com/julianstephens/labcita/internal/session"
)

type LoginCmd struct {
	Email    string `help:"Administrator email. Prompted when omitted."`
	Password string `help:"Administrator password. Prompted when omitted." env:"LABCITA_ADMIN_PASSWORD"`
}

func (c *LoginCmd) Run(ctx *cli.Context) error {
	mgr, err := ctx.Session()
	if err != nil {
		return err
	}
	if !mgr.IsRegistered() {
		return session.ErrNotRegistered
	}

	email, password := c.Email, c.Password
	if email == "" || password == "" {
		form := huh.NewForm(huh.NewGroup(
			huh.NewInput().Title("Email").Value(&email),
			huh.NewInput().Title("Contraseña").EchoMode(huh.EchoModePassword).Value(&password),
		))
		if err := form.Run(); err != nil {
			return err
		}
	}

	if err := mgr.Login(email, password); err != nil {
		return err
	}
	auth := mgr.Auth()
	fmt.Printf("✓ Bienvenido, %s\n", auth.UserName)
	if !mgr.IsActive() {
		reg, _ := mgr.Registration()
		fmt.Printf("⚠ Account status is %s; the console stays locked until it is active.\n", reg.Status)
	}
	return nil
}

type LogoutCmd struct{}

func (c *LogoutCmd) Run(ctx *cli.Context) error {
	mgr, err := ctx.Session()
	if err != nil {
		return err
	}
	if !mgr.Auth().IsLoggedIn {
		fmt.Println("Not logged in.")
		return nil
	}
	if err := mgr.Logout(); err != nil {
		return err
	}
	fmt.Println("✓ Sesión cerrada")
	return nil
}

type WhoamiCmd struct {
	JSON bool `help:"Print as JSON." name:"json"`
}

type whoamiOutput struct {
	Registered bool   `json:"registered"`
	Lab        string `json:"lab,omitempty"`
	Plan       string `json:"plan,omitempty"`
	Status     string `json:"status,omitempty"`
	LeaseEnds  string `json:"lease_expires_at,omitempty"`
	LoggedIn   bool   `json:"logged_in"`
	User       string `json:"user,omitempty"`
	Email      string `json:"email,omitempty"`
}

func (c *WhoamiCmd) Run(ctx *cli.Context) error {
	mgr, err := ctx.Session()
	if err != nil {
		return err
	}

	out := whoamiOutput{}
	if reg, ok := mgr.Registration(); ok {
		out.Registered = true
		out.Lab = reg.Lab.Name
		out.Plan = reg.Plan.PlanID
		out.Status = string(reg.Status)
		out.LeaseEnds = reg.LeaseExpiresAt
	}
	auth := mgr.Auth()
	out.LoggedIn = auth.IsLoggedIn
	out.User = auth.UserName
	out.Email = auth.UserEmail

	if c.JSON {
		return cli.PrintJSON(out)
	}

	if !out.Registered {
		fmt.Println("No lab registered. Run 'labcita register'.")
		return nil
	}
	fmt.Printf("Lab:    %s\n", out.Lab)
	fmt.Printf("Plan:   %s\n", out.Plan)
	fmt.Printf("Status: %s\n", out.Status)
	if out.LeaseEnds != "" {
		fmt.Printf("Lease:  until %s\n", out.LeaseEnds)
	}
	if out.LoggedIn {
		fmt.Printf("User:   %s <%s>\n", out.User, out.Email)
	} else {
		fmt.Println("User:   not logged in")
	}
	return nil
}
