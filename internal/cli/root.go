package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
)

func (a *App) status() string {
	if username := a.svc.ActiveUsername(); username != "" {
		return fmt.Sprintf("(%s) ", username)
	}
	return ""
}

// Run starts the read-eval-print loop. It reads a line, parses the first
// token as the command, and dispatches. The loop exits on EOF or when the
// user types "exit" or "quit"; an active session is logged out first so the
// store gets its final flush.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to taskkeeper (type 'help' for commands)")

	for {
		fmt.Fprintf(a.out, "tk %s> ", a.status())
		line, readErr := a.reader.ReadString('\n')
		if readErr != nil && line == "" {
			a.shutdown(ctx)
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			if readErr != nil {
				a.shutdown(ctx)
				return
			}
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.svc.IsAuthenticated() {
				fmt.Fprintln(a.out, "Available commands: add, (l)ist, done, delete, logout, exit")
			} else {
				fmt.Fprintln(a.out, "Available commands: register, login, exit")
			}

		case "register":
			a.register(ctx)
		case "login":
			a.login(ctx)
		case "logout":
			a.logout(ctx)
		case "add":
			a.addTask(ctx)
		case "l", "list":
			a.listTasks()
		case "done":
			a.completeTask(ctx)
		case "delete":
			a.deleteTask(ctx)
		case "exit", "quit":
			a.shutdown(ctx)
			fmt.Fprintln(a.out, "Bye!")
			return
		default:
			fmt.Fprintln(a.out, "Unknown command:", cmd)
		}

		if readErr != nil {
			a.shutdown(ctx)
			return
		}
	}
}

// shutdown logs out a still-active session so in-memory changes reach disk.
func (a *App) shutdown(ctx context.Context) {
	if !a.svc.IsAuthenticated() {
		return
	}
	if err := a.svc.Logout(ctx); err != nil {
		a.logger.Error(ctx, "logout on shutdown failed", "error", err)
	}
}

func (a *App) register(ctx context.Context) {
	username, err := GetSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		a.logger.Error(ctx, "reading username failed", "error", err)
		return
	}
	if username == "" {
		fmt.Fprintln(a.out, "Username cannot be empty.")
		return
	}

	password, err := GetPassword(a.out)
	if err != nil {
		a.logger.Error(ctx, "reading password failed", "error", err)
		return
	}
	defer common.WipeByteArray(password)

	switch err := a.svc.Register(ctx, username, password); {
	case errors.Is(err, common.ErrDuplicateUsername):
		fmt.Fprintln(a.out, "Username already exists. Please choose a different username and try again.")
	case err != nil:
		fmt.Fprintln(a.out, "Registration failed:", err)
	default:
		fmt.Fprintln(a.out, "Password saved!")
	}
}

func (a *App) login(ctx context.Context) {
	username, err := GetSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		a.logger.Error(ctx, "reading username failed", "error", err)
		return
	}

	password, err := GetPassword(a.out)
	if err != nil {
		a.logger.Error(ctx, "reading password failed", "error", err)
		return
	}
	defer common.WipeByteArray(password)

	switch err := a.svc.Login(ctx, username, password); {
	case errors.Is(err, common.ErrUnknownUsername):
		fmt.Fprintf(a.out, "User with username %s not found. Please try again.\n", username)
	case errors.Is(err, common.ErrWrongPassword):
		fmt.Fprintln(a.out, "Wrong password. Please try again.")
	case err != nil:
		fmt.Fprintln(a.out, "Login failed:", err)
	default:
		fmt.Fprintln(a.out, "Login successful")
	}
}

func (a *App) logout(ctx context.Context) {
	switch err := a.svc.Logout(ctx); {
	case errors.Is(err, common.ErrNoActiveSession):
		fmt.Fprintln(a.out, "No user is logged in.")
	case err != nil:
		fmt.Fprintln(a.out, "Logout failed:", err)
	default:
		fmt.Fprintln(a.out, "Logged out successfully.")
	}
}

func (a *App) addTask(ctx context.Context) {
	if !a.svc.IsAuthenticated() {
		fmt.Fprintln(a.out, "No user is logged in.")
		return
	}

	description, err := GetSimpleText(a.reader, "Enter task description", a.out)
	if err != nil {
		a.logger.Error(ctx, "reading description failed", "error", err)
		return
	}
	if description == "" {
		fmt.Fprintln(a.out, "Task description cannot be empty.")
		return
	}

	if _, err := a.svc.AddTask(ctx, description); err != nil {
		fmt.Fprintln(a.out, "Failed to add task:", err)
		return
	}
	fmt.Fprintln(a.out, "Task added successfully.")
}

func (a *App) listTasks() {
	tasks, err := a.svc.ListTasks()
	if err != nil {
		fmt.Fprintln(a.out, "No user is logged in.")
		return
	}
	if len(tasks) == 0 {
		fmt.Fprintln(a.out, "No tasks to display.")
		return
	}
	renderTaskTable(a.out, tasks)
}

func (a *App) completeTask(ctx context.Context) {
	if !a.svc.IsAuthenticated() {
		fmt.Fprintln(a.out, "No user is logged in.")
		return
	}

	taskID, err := GetTaskID(a.reader, "Enter task ID to mark as completed", a.out)
	if err != nil {
		a.logger.Error(ctx, "reading task id failed", "error", err)
		return
	}

	switch err := a.svc.CompleteTask(ctx, taskID); {
	case errors.Is(err, common.ErrTaskNotFound):
		fmt.Fprintf(a.out, "Task with ID %d not found.\n", taskID)
	case err != nil:
		fmt.Fprintln(a.out, "Failed to update task:", err)
	default:
		fmt.Fprintf(a.out, "Task %d marked as completed.\n", taskID)
	}
}

func (a *App) deleteTask(ctx context.Context) {
	if !a.svc.IsAuthenticated() {
		fmt.Fprintln(a.out, "No user is logged in.")
		return
	}

	taskID, err := GetTaskID(a.reader, "Enter task ID to delete", a.out)
	if err != nil {
		a.logger.Error(ctx, "reading task id failed", "error", err)
		return
	}

	switch err := a.svc.DeleteTask(ctx, taskID); {
	case errors.Is(err, common.ErrTaskNotFound):
		fmt.Fprintf(a.out, "Task with ID %d not found.\n", taskID)
	case err != nil:
		fmt.Fprintln(a.out, "Failed to delete task:", err)
	default:
		fmt.Fprintf(a.out, "Task %d deleted.\n", taskID)
	}
}
