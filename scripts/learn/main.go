package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"learnpath/client"
	"learnpath/config"
	"learnpath/learning"
	"learnpath/logger"
)

// Walks a course from the terminal through the learn API:
//
//	go run ./scripts/learn -slug go-basics -next 2
func main() {
	slug := flag.String("slug", "", "course slug")
	lesson := flag.Uint("lesson", 0, "open this lesson instead of resuming")
	next := flag.Int("next", 0, "advance this many lessons, completing each one left")
	toggle := flag.Bool("toggle", false, "toggle completion of the landing lesson")
	flag.Parse()
	if *slug == "" {
		fmt.Fprintln(os.Stderr, "usage: learn -slug <course> [-lesson id] [-next n] [-toggle]")
		os.Exit(2)
	}

	config.LoadConfig()
	log, err := logger.New(config.AppConfig.LogMode)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	raw := "learnpath://course/" + *slug
	if *lesson > 0 {
		raw += fmt.Sprintf("?%s=%d", learning.LessonParam, *lesson)
	}
	position, err := learning.ParseQueryURL(raw)
	if err != nil {
		log.Fatal("bad course url", "error", err)
	}

	api := client.New(config.AppConfig.LearnAPIURL, os.Getenv("LEARN_TOKEN"))
	session := learning.NewSession(api, learning.WithURL(position), learning.WithLogger(log))
	defer session.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := session.Open(ctx, *slug); err != nil {
		log.Fatal("open course failed", "slug", *slug, "error", err)
	}
	if *toggle {
		if current := session.Loader.Requested(); current != 0 {
			if err := session.Tracker.ToggleComplete(ctx, current); err != nil {
				log.Error("toggle failed", "lesson_id", current, "error", err)
			}
		}
	}
	for i := 0; i < *next; i++ {
		if err := session.Next(ctx); err != nil {
			log.Error("advance failed", "error", err)
			break
		}
	}

	printOutline(session)
	fmt.Println("position:", position.String())
}

func printOutline(s *learning.Session) {
	enrollment, _ := s.Resolver.Enrollment()
	current := s.Loader.Requested()
	fmt.Printf("%s  %.0f%%  (%s)\n", enrollment.CourseName, s.Progress(), s.Resolver.Resolution().Rule)

	breakdown := s.ModuleProgress()
	for i, m := range s.Modules() {
		pct := float64(0)
		if i < len(breakdown) {
			pct = breakdown[i].Progress
		}
		fmt.Printf("  %s  %.0f%%\n", m.Title, pct)
		for _, l := range m.Lessons {
			mark := " "
			if l.IsCompleted {
				mark = "x"
			}
			cursor := "  "
			if l.ID == current {
				cursor = "> "
			}
			fmt.Printf("    %s[%s] %-40s %s\n", cursor, mark, l.Title, strings.ToLower(string(l.Kind)))
		}
	}

	view := s.Loader.View()
	switch {
	case view.NotFound:
		fmt.Println("lesson not found")
	case view.Lesson != nil && view.Lesson.Kind == learning.KindQuiz:
		fmt.Printf("quiz: %d questions\n", len(view.Lesson.Questions))
	}
	seq := s.Sequence()
	if seq.HasPrevious {
		fmt.Println("previous:", seq.Previous)
	}
	if seq.HasNext {
		fmt.Println("next:", seq.Next)
	}
}
