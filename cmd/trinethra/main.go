// Command trinethra runs the interactive feed client against the local store.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"trinethra/internal/cache"
	"trinethra/internal/config"
	"trinethra/internal/gateway"
	"trinethra/internal/models"
	"trinethra/internal/observability"
	"trinethra/internal/repository"
	"trinethra/internal/service"
	"trinethra/internal/store"
)

type app struct {
	auth      *service.AuthService
	feed      *service.FeedService
	assistant gateway.Assistant
	reader    *bufio.Scanner
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	st, err := store.OpenSQLite(cfg.StoragePath)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}

	cache.InitRedis(cfg.RedisURL)
	if cache.GetClient() != nil {
		fmt.Println("Assistant response cache connected.")
	}

	users := repository.NewUserRepository(st)
	sessions := repository.NewSessionRepository(st)
	posts := repository.NewPostRepository(st)
	assistant := gateway.NewGeminiClient(cfg.GeminiAPIKey, cfg.TextModel, cfg.ImageModel)

	a := &app{
		auth:      service.NewAuthService(users, sessions),
		feed:      service.NewFeedService(posts, sessions, assistant),
		assistant: assistant,
		reader:    bufio.NewScanner(os.Stdin),
	}

	fmt.Println("TRINETHRA — vision interface. Type 'help' for commands.")
	a.run(context.Background())
}

func (a *app) run(ctx context.Context) {
	for {
		fmt.Printf("%s> ", a.status(ctx))
		if !a.reader.Scan() {
			return
		}
		parts := strings.Fields(a.reader.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		// Each command gets its own correlation ID so store and assistant
		// log lines from one interaction can be grouped.
		ctx := observability.WithCorrelationID(ctx, observability.GenerateCorrelationID())

		switch cmd {
		case "help":
			fmt.Println("Commands: register, login, logout, whoami, feed, profile,")
			fmt.Println("          like <postID>, comment <postID> <text...>, post, search <query...>, exit")
		case "register":
			a.register(ctx)
		case "login":
			a.login(ctx)
		case "logout":
			report(a.auth.Logout(ctx))
			fmt.Println("Disconnected.")
		case "whoami":
			a.whoami(ctx)
		case "feed":
			a.showFeed(ctx)
		case "profile":
			a.profile(ctx)
		case "like":
			if len(args) != 1 {
				fmt.Println("usage: like <postID>")
				continue
			}
			if _, err := a.feed.ToggleLike(ctx, args[0]); err != nil {
				report(err)
			}
		case "comment":
			if len(args) < 2 {
				fmt.Println("usage: comment <postID> <text>")
				continue
			}
			if _, err := a.feed.AddComment(ctx, args[0], strings.Join(args[1:], " ")); err != nil {
				report(err)
			}
		case "post":
			a.compose(ctx)
		case "search":
			a.search(ctx, strings.Join(args, " "))
		case "exit", "quit":
			return
		default:
			fmt.Printf("unknown command %q, try 'help'\n", cmd)
		}
	}
}

func (a *app) status(ctx context.Context) string {
	user, err := a.auth.ActiveUser(ctx)
	if err != nil || user == nil {
		return "guest"
	}
	return "@" + user.Username
}

func (a *app) prompt(label string) string {
	fmt.Printf("%s: ", label)
	if !a.reader.Scan() {
		return ""
	}
	return strings.TrimSpace(a.reader.Text())
}

func (a *app) register(ctx context.Context) {
	in := service.RegisterInput{
		Username:    a.prompt("username"),
		DisplayName: a.prompt("display name"),
		Password:    a.prompt("password"),
		Bio:         a.prompt("bio (optional)"),
	}
	user, err := a.auth.Register(ctx, in)
	if err != nil {
		report(err)
		return
	}
	fmt.Printf("Welcome, %s — you are now connected.\n", user.DisplayName)
}

func (a *app) login(ctx context.Context) {
	username := a.prompt("username")
	password := a.prompt("password")
	user, err := a.auth.Login(ctx, username, password)
	if err != nil {
		report(err)
		return
	}
	fmt.Printf("Connected as @%s.\n", user.Username)
}

func (a *app) whoami(ctx context.Context) {
	user, err := a.auth.ActiveUser(ctx)
	if err != nil {
		report(err)
		return
	}
	if user == nil {
		guest := models.GuestUser()
		fmt.Printf("Browsing as %s (read-only).\n", guest.DisplayName)
		return
	}
	fmt.Printf("@%s — %s\n%s\n", user.Username, user.DisplayName, user.Bio)
}

func (a *app) showFeed(ctx context.Context) {
	posts, err := a.feed.Feed(ctx)
	if err != nil {
		report(err)
		return
	}
	printPosts(posts)
}

func (a *app) profile(ctx context.Context) {
	user, err := a.auth.ActiveUser(ctx)
	if err != nil || user == nil {
		fmt.Println("Not connected.")
		return
	}
	posts, err := a.feed.PostsBy(ctx, user.ID)
	if err != nil {
		report(err)
		return
	}
	fmt.Printf("@%s — %d posts, %d followers, %d following\n",
		user.Username, len(posts), user.Followers, user.Following)
	printPosts(posts)
}

// compose walks the Upload -> Refine -> Submitted flow interactively.
func (a *app) compose(ctx context.Context) {
	composer := service.NewComposer(a.feed, a.assistant)

	for composer.State() == service.StateUpload {
		choice := a.prompt("image URL, 'ai <prompt>' to synthesize, or 'cancel'")
		switch {
		case choice == "cancel" || choice == "":
			return
		case strings.HasPrefix(choice, "ai "):
			fmt.Println("Synthesizing...")
			if err := composer.GenerateImage(ctx, strings.TrimPrefix(choice, "ai ")); err != nil {
				fmt.Println("Synthesis failed, try again or paste a URL.")
			}
		default:
			if err := composer.SelectImage(choice); err != nil {
				report(err)
			}
		}
	}

	for composer.State() == service.StateRefine {
		action := a.prompt("caption <text> | vibe <text> | suggest | back | submit")
		switch {
		case strings.HasPrefix(action, "caption "):
			composer.SetCaption(strings.TrimPrefix(action, "caption "))
		case strings.HasPrefix(action, "vibe "):
			composer.SetVibe(strings.TrimPrefix(action, "vibe "))
		case action == "suggest":
			fmt.Println("Consulting the assistant...")
			caption, _ := composer.SuggestCaption(ctx)
			vibe, _ := composer.SuggestVibe(ctx)
			fmt.Printf("caption: %s\nvibe: %s\n", caption, vibe)
		case action == "back":
			report(composer.Back())
		case action == "submit":
			if _, err := composer.Submit(ctx); err != nil {
				report(err)
				continue
			}
			fmt.Println("Vision broadcast to the core feed.")
		default:
			fmt.Println("unknown action")
		}
	}
}

func (a *app) search(ctx context.Context, query string) {
	if query != "" {
		fmt.Println("Searching the vision...")
	}
	posts, err := a.feed.Search(ctx, query)
	if err != nil {
		if models.HasCode(err, models.CodeSearchSuperseded) {
			return
		}
		report(err)
		return
	}
	printPosts(posts)
}

func printPosts(posts []models.Post) {
	if len(posts) == 0 {
		fmt.Println("Vision is empty.")
		return
	}
	for _, p := range posts {
		liked := " "
		if p.LikedByMe {
			liked = "♥"
		}
		vibe := ""
		if p.AIVibe != "" {
			vibe = " [" + p.AIVibe + "]"
		}
		fmt.Printf("%s %s @%s%s — %s (%d likes, %d comments)\n",
			liked, p.ID, p.Username, vibe, p.Caption, p.Likes, len(p.Comments))
		for _, c := range p.Comments {
			fmt.Printf("    @%s: %s\n", c.Username, c.Text)
		}
	}
}

func report(err error) {
	if err != nil {
		fmt.Println("error:", err)
	}
}
