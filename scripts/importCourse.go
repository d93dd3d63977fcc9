package main

import (
	"flag"
	"log"
	"os"

	"learnpath/config"
	"learnpath/database"
	"learnpath/utils"
)

// Imports a course from YAML:
//
//	go run ./scripts -file course.yaml
func main() {
	path := flag.String("file", "course.yaml", "course YAML file to import")
	flag.Parse()

	// Load config and connect to database
	config.LoadConfig()
	database.ConnectDb()

	file, err := os.Open(*path)
	if err != nil {
		log.Fatalf("Failed to open course file: %v", err)
	}
	defer file.Close()

	doc, err := utils.ParseCourseDoc(file)
	if err != nil {
		log.Fatalf("Failed to read course: %v", err)
	}

	res, err := utils.ImportCourse(database.Database.Db, doc)
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}

	n, err := utils.SyncEnrollmentProgress(database.Database.Db)
	if err != nil {
		log.Printf("Progress sync after import failed: %v", err)
	}

	log.Printf("Imported %q (course %d, created=%t): %d modules, %d lessons written; %d modules, %d lessons unpublished; %d enrollments refreshed",
		doc.Slug, res.CourseID, res.Created, res.ModulesWritten, res.LessonsWritten, res.ModulesRetired, res.LessonsRetired, n)
}
