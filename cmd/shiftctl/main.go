// shiftctl is a terminal client for the doctor shift marketplace. It keeps
// the bearer token in ~/.shiftctl-token so a login survives between runs.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/doctorshift/marketplace-api/internal/models"
	"github.com/doctorshift/marketplace-api/pkg/client"
)

func usage() {
	fmt.Fprintln(os.Stderr, `usage: shiftctl <command> [flags]

commands:
  register   submit a doctor application (license image required)
  login      sign in and persist the credential
  logout     drop the persisted credential
  me         show the current identity
  shifts     list open shifts (client-side filters)
  post       post a new shift
  my-shifts  list shifts you posted
  delete     take down one of your shifts
  pending    list doctors awaiting approval (admin)
  approve    approve a pending doctor (admin)
  reject     reject a pending doctor (admin)`)
	os.Exit(2)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	baseURL := os.Getenv("SHIFTCTL_API")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	home, err := os.UserHomeDir()
	if err != nil {
		fatal(err)
	}
	creds := &client.FileCredentialStore{Path: filepath.Join(home, ".shiftctl-token")}

	api := client.New(baseURL)
	session := client.NewSession(api, creds)
	ctx := context.Background()

	cmd, args := os.Args[1], os.Args[2:]

	// Everything except register/login/logout needs the restored session.
	switch cmd {
	case "register", "login", "logout":
	default:
		if err := session.Init(ctx); err != nil {
			fatal(err)
		}
		if state, _ := session.State(); state != client.SessionAuthenticated {
			fatal(fmt.Errorf("not logged in, run: shiftctl login"))
		}
	}

	switch cmd {
	case "register":
		cmdRegister(ctx, api, args)
	case "login":
		cmdLogin(ctx, session, args)
	case "logout":
		session.Logout()
		fmt.Println("logged out")
	case "me":
		cmdMe(ctx, api)
	case "shifts":
		cmdShifts(ctx, api, args)
	case "post":
		cmdPost(ctx, api, args)
	case "my-shifts":
		cmdMyShifts(ctx, api)
	case "delete":
		cmdDelete(ctx, api, args)
	case "pending":
		cmdPending(ctx, api)
	case "approve":
		cmdDecide(ctx, api, args, true)
	case "reject":
		cmdDecide(ctx, api, args, false)
	default:
		usage()
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "shiftctl:", err)
	os.Exit(1)
}

func cmdRegister(ctx context.Context, api *client.Client, args []string) {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	firstName := fs.String("first-name", "", "first name")
	lastName := fs.String("last-name", "", "last name")
	phone := fs.String("phone", "", "phone number")
	license := fs.String("license", "", "medical license number")
	image := fs.String("image", "", "path to license image")
	fs.Parse(args)

	var reg client.Registration
	reg.Email = *email
	reg.Password = *password
	reg.FirstName = *firstName
	reg.LastName = *lastName
	reg.PhoneNumber = *phone
	reg.MedicalLicenseNumber = *license

	if *image != "" {
		f, err := os.Open(*image)
		if err != nil {
			fatal(err)
		}
		defer f.Close()
		reg.LicenseImage = f
		reg.LicenseImageName = filepath.Base(*image)
	}

	user, err := api.Register(ctx, reg)
	if err != nil {
		fatal(err)
	}
	fmt.Printf("registered %s, approval status: %s\n", user.Email, user.ApprovalStatus)
	fmt.Println("ทีมงานกำลังตรวจสอบใบอนุญาต กรุณารอการอนุมัติก่อนเข้าสู่ระบบ")
}

func cmdLogin(ctx context.Context, session *client.Session, args []string) {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	fs.Parse(args)

	ok, message := session.Login(ctx, *email, *password)
	if !ok {
		fatal(fmt.Errorf("%s", message))
	}
	_, user := session.State()
	fmt.Printf("logged in as %s (%s)\n", user.FullName(), user.Role)
	if !user.IsApproved() {
		fmt.Println("บัญชีของคุณอยู่ระหว่างการตรวจสอบ")
	}
}

func cmdMe(ctx context.Context, api *client.Client) {
	user, err := api.Me(ctx)
	if err != nil {
		fatal(err)
	}
	fmt.Printf("%s <%s>\nrole: %s\napproval: %s\nlicense: %s\n",
		user.FullName(), user.Email, user.Role, user.ApprovalStatus, user.MedicalLicenseNumber)
}

func cmdShifts(ctx context.Context, api *client.Client, args []string) {
	fs := flag.NewFlagSet("shifts", flag.ExitOnError)
	position := fs.String("position", "", "exact specialty")
	location := fs.String("location", "", "location or hospital substring")
	from := fs.String("from", "", "earliest shift date (YYYY-MM-DD)")
	to := fs.String("to", "", "latest shift date (YYYY-MM-DD)")
	fs.Parse(args)

	shifts, err := api.Shifts(ctx)
	if err != nil {
		fatal(err)
	}

	filtered := client.FilterShifts(shifts, client.ShiftFilter{
		Position: *position,
		Location: *location,
		DateFrom: *from,
		DateTo:   *to,
	})

	fmt.Printf("พบ %d เวร\n", len(filtered))
	for _, s := range filtered {
		printShift(&s)
	}
}

func cmdPost(ctx context.Context, api *client.Client, args []string) {
	fs := flag.NewFlagSet("post", flag.ExitOnError)
	position := fs.String("position", "", "specialty")
	date := fs.String("date", "", "shift date (YYYY-MM-DD)")
	start := fs.String("start", "", "start time (HH:MM)")
	end := fs.String("end", "", "end time (HH:MM)")
	hospital := fs.String("hospital", "", "hospital name")
	location := fs.String("location", "", "location")
	compensation := fs.Float64("compensation", 0, "compensation (THB)")
	description := fs.String("description", "", "details")
	requirements := fs.String("requirements", "", "requirements")
	contact := fs.String("contact", "", "contact method")
	fs.Parse(args)

	shift, err := api.CreateShift(ctx, client.ShiftPosting{
		Position:      *position,
		ShiftDate:     *date,
		StartTime:     *start,
		EndTime:       *end,
		HospitalName:  *hospital,
		Location:      *location,
		Compensation:  *compensation,
		Description:   *description,
		Requirements:  *requirements,
		ContactMethod: *contact,
	})
	if err != nil {
		fatal(err)
	}
	fmt.Printf("posted shift %s\n", shift.ID.Hex())
}

func cmdMyShifts(ctx context.Context, api *client.Client) {
	shifts, err := api.MyShifts(ctx)
	if err != nil {
		fatal(err)
	}
	for _, s := range shifts {
		printShift(&s)
	}
}

func cmdDelete(ctx context.Context, api *client.Client, args []string) {
	if len(args) != 1 {
		fatal(fmt.Errorf("usage: shiftctl delete <shift-id>"))
	}
	if err := api.DeleteShift(ctx, args[0]); err != nil {
		fatal(err)
	}
	fmt.Println("shift deleted")
}

func cmdPending(ctx context.Context, api *client.Client) {
	pending := client.NewPendingList(api)
	if err := pending.Refresh(ctx); err != nil {
		fatal(err)
	}
	users := pending.Users()
	if len(users) == 0 {
		fmt.Println("no pending users")
		return
	}
	for _, u := range users {
		fmt.Printf("%s  %s <%s>  license %s\n", u.ID.Hex(), u.FullName(), u.Email, u.MedicalLicenseNumber)
	}
}

func cmdDecide(ctx context.Context, api *client.Client, args []string, approve bool) {
	if len(args) != 1 {
		fatal(fmt.Errorf("usage: shiftctl approve|reject <user-id>"))
	}
	pending := client.NewPendingList(api)
	if err := pending.Refresh(ctx); err != nil {
		fatal(err)
	}

	var err error
	if approve {
		err = pending.Approve(ctx, args[0])
	} else {
		err = pending.Reject(ctx, args[0])
	}
	if err != nil {
		fatal(err)
	}
	fmt.Printf("done, %d still pending\n", len(pending.Users()))
}

func printShift(s *models.Shift) {
	fmt.Printf("%s  %s  %s %s-%s  %s (%s)  %.0f THB\n",
		s.ID.Hex(), s.Position, s.ShiftDate, s.StartTime, s.EndTime,
		s.HospitalName, s.Location, s.Compensation)
}
