// dashctl is a small terminal client for the project-dashboard API. It keeps
// the session token in a file under the user's home directory, the same
// single-token contract the web UI keeps in local storage.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spec-kit/project-dashboard/pkg/dashclient"
)

func main() {
	baseURL := flag.String("server", envOr("DASHBOARD_URL", "http://localhost:8080"), "dashboard API base URL")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		fatal(err)
	}
	store := dashclient.NewFileTokenStore(filepath.Join(home, ".dashctl", "token"))
	client := dashclient.New(*baseURL)
	session := dashclient.NewSession(client, store)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := run(ctx, session, args); err != nil {
		fatal(err)
	}
}

func run(ctx context.Context, session *dashclient.Session, args []string) error {
	switch args[0] {
	case "login":
		return cmdLogin(ctx, session, args[1:])
	case "signup":
		return cmdSignup(ctx, session, args[1:])
	case "logout":
		return session.Logout()
	case "whoami":
		return cmdWhoami(ctx, session)
	case "projects":
		return cmdProjects(ctx, session, args[1:])
	default:
		usage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func cmdLogin(ctx context.Context, session *dashclient.Session, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	_ = fs.Parse(args)
	if *email == "" || *password == "" {
		return fmt.Errorf("login requires -email and -password")
	}
	if err := session.Login(ctx, *email, *password); err != nil {
		return err
	}
	fmt.Printf("logged in as %s\n", session.User().Email)
	return nil
}

func cmdSignup(ctx context.Context, session *dashclient.Session, args []string) error {
	fs := flag.NewFlagSet("signup", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	name := fs.String("name", "", "display name")
	role := fs.String("role", "", "employee or project_manager (default employee)")
	_ = fs.Parse(args)
	if *email == "" || *password == "" || *name == "" {
		return fmt.Errorf("signup requires -email, -password and -name")
	}
	err := session.Signup(ctx, dashclient.SignupData{
		Email:    *email,
		Password: *password,
		Name:     *name,
		Role:     *role,
	})
	if err != nil {
		return err
	}
	fmt.Printf("account created for %s\n", session.User().Email)
	return nil
}

func cmdWhoami(ctx context.Context, session *dashclient.Session) error {
	if err := requireSession(ctx, session); err != nil {
		return err
	}
	user := session.User()
	fmt.Printf("%s <%s> role=%s\n", user.Name, user.Email, user.Role)
	return nil
}

func cmdProjects(ctx context.Context, session *dashclient.Session, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("projects requires a subcommand: ls, show, create")
	}
	if err := requireSession(ctx, session); err != nil {
		return err
	}
	client := session.Client()

	switch args[0] {
	case "ls":
		projects, err := client.ListProjects(ctx, session.Token())
		if err != nil {
			return err
		}
		for _, p := range projects {
			fmt.Printf("%s\t%s\t%s\tdue %s\n", p.ID, p.Name, p.Priority, p.Deadline.Format("2006-01-02"))
		}
		return nil
	case "show":
		if len(args) < 2 {
			return fmt.Errorf("projects show requires an id")
		}
		p, err := client.GetProject(ctx, session.Token(), args[1])
		if err != nil {
			return err
		}
		manager := p.ProjectManager
		if p.ProjectManagerName != nil {
			manager = *p.ProjectManagerName
		}
		fmt.Printf("%s\n  %s\n  manager: %s\n  priority: %s, due %s\n  tags: %s\n",
			p.Name, p.Description, manager, p.Priority,
			p.Deadline.Format("2006-01-02"), strings.Join(p.Tags, ", "))
		return nil
	case "create":
		return cmdProjectCreate(ctx, session, client, args[1:])
	default:
		return fmt.Errorf("unknown projects subcommand %q", args[0])
	}
}

func cmdProjectCreate(ctx context.Context, session *dashclient.Session, client *dashclient.Client, args []string) error {
	fs := flag.NewFlagSet("projects create", flag.ExitOnError)
	name := fs.String("name", "", "project name")
	description := fs.String("description", "", "project description")
	tags := fs.String("tags", "", "comma-separated tags")
	manager := fs.String("manager", "", "manager user id (defaults to the caller)")
	deadline := fs.String("deadline", "", "deadline, RFC 3339 or YYYY-MM-DD")
	priority := fs.String("priority", "medium", "low, medium or high")
	_ = fs.Parse(args)

	if *name == "" || *description == "" || *deadline == "" {
		return fmt.Errorf("projects create requires -name, -description and -deadline")
	}
	due, err := parseDeadline(*deadline)
	if err != nil {
		return err
	}
	managerID := *manager
	if managerID == "" {
		managerID = session.User().ID
	}

	var tagList []string
	if *tags != "" {
		tagList = strings.Split(*tags, ",")
	}

	project, err := client.CreateProject(ctx, session.Token(), dashclient.CreateProjectData{
		Name:           *name,
		Description:    *description,
		Tags:           tagList,
		ProjectManager: managerID,
		Deadline:       due,
		Priority:       *priority,
	})
	if err != nil {
		return err
	}
	fmt.Printf("created project %s\n", project.ID)
	return nil
}

func requireSession(ctx context.Context, session *dashclient.Session) error {
	if err := session.Init(ctx); err != nil {
		return err
	}
	if !session.IsAuthenticated() {
		return fmt.Errorf("not logged in; run dashctl login first")
	}
	return nil
}

func parseDeadline(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid deadline %q", value)
	}
	return t, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: dashctl [-server URL] <command>

commands:
  signup  -email -password -name [-role]
  login   -email -password
  logout
  whoami
  projects ls
  projects show <id>
  projects create -name -description -deadline [-tags -manager -priority]`)
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "dashctl:", err)
	os.Exit(1)
}
