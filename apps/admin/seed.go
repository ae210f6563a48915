package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/ericnguyen1274/Customer---App/core/catalog"
)

// workbook sheets
const (
	sheetCategories = "Categories"
	sheetTeachers   = "Teachers"
	sheetCourses    = "Courses"
	sheetPayments   = "Payments"
)

var paymentsHeader = []interface{}{"paymentId", "customerId", "amount", "date"}

type catalogWorkbook struct {
	categories []catalog.NewCategory
	teachers   []catalog.NewTeacher
	courses    []catalog.NewCourse
}

// seed imports the catalog workbook at path. Missing sheets are skipped.
func (cli *commandLine) seed(path string) error {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return errors.Wrap(err, "opening workbook")
	}
	defer f.Close()

	wb, err := readCatalogWorkbook(f)
	if err != nil {
		return err
	}

	ctx := context.Background()
	for _, nc := range wb.categories {
		if _, err := cli.catalog.CreateCategory(ctx, nc); err != nil {
			return errors.Wrapf(err, "creating category %d", nc.CategoryID)
		}
	}
	for _, nt := range wb.teachers {
		if _, err := cli.catalog.CreateTeacher(ctx, nt); err != nil {
			return errors.Wrapf(err, "creating teacher %d", nt.TeacherID)
		}
	}
	for _, nc := range wb.courses {
		if _, err := cli.catalog.CreateCourse(ctx, nc); err != nil {
			return errors.Wrapf(err, "creating course %d", nc.CourseID)
		}
	}
	fmt.Fprintf(cli.out, "seeded %d categories, %d teachers, %d courses\n",
		len(wb.categories), len(wb.teachers), len(wb.courses))
	return nil
}

func readCatalogWorkbook(f *excelize.File) (catalogWorkbook, error) {
	var wb catalogWorkbook

	rows, err := sheetRecords(f, sheetCategories)
	if err != nil {
		return wb, err
	}
	for _, r := range rows {
		wb.categories = append(wb.categories, catalog.NewCategory{
			CategoryID:   r.int("categoryId"),
			Name:         r.str("name"),
			CategoryName: r.str("categoryName"),
		})
	}

	if rows, err = sheetRecords(f, sheetTeachers); err != nil {
		return wb, err
	}
	for _, r := range rows {
		wb.teachers = append(wb.teachers, catalog.NewTeacher{
			TeacherID: r.int("teacherId"),
			Name:      r.str("name"),
			Bio:       r.str("bio"),
		})
	}

	if rows, err = sheetRecords(f, sheetCourses); err != nil {
		return wb, err
	}
	for _, r := range rows {
		wb.courses = append(wb.courses, catalog.NewCourse{
			CourseID:    r.int("courseId"),
			Name:        r.str("name"),
			Description: r.str("description"),
			Price:       r.int("price"),
			Duration:    r.int("duration"),
			Capacity:    r.int("capacity"),
			DayOfWeek:   r.str("dayOfWeek"),
			Time:        r.str("time"),
			CategoryID:  r.int("categoryId"),
			TeacherID:   r.int("teacherId"),
			Level:       r.str("level"),
		})
	}
	return wb, nil
}

// record is a sheet row keyed by the header of its column.
type record map[string]string

func (r record) str(key string) string { return strings.TrimSpace(r[key]) }

func (r record) int(key string) int {
	n, _ := strconv.Atoi(r.str(key))
	return n
}

// sheetRecords reads every non-empty row below the header; a missing sheet has no records.
func sheetRecords(f *excelize.File, sheet string) ([]record, error) {
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, nil
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrapf(err, "reading sheet %s", sheet)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	header := rows[0]
	records := make([]record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(record, len(header))
		empty := true
		for i, key := range header {
			if i < len(row) {
				rec[strings.TrimSpace(key)] = row[i]
				empty = empty && strings.TrimSpace(row[i]) == ""
			}
		}
		if !empty {
			records = append(records, rec)
		}
	}
	return records, nil
}

// exportPayments writes the payments of a customer, newest first, to a new workbook at path.
func (cli *commandLine) exportPayments(customerID int, path string) error {
	payments, err := cli.purchases.Payments(context.Background(), customerID)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName(f.GetSheetName(0), sheetPayments); err != nil {
		return errors.Wrap(err, "naming sheet")
	}
	if err := f.SetSheetRow(sheetPayments, "A1", &paymentsHeader); err != nil {
		return errors.Wrap(err, "writing header")
	}
	for i, p := range payments {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{p.PaymentID.Int(), p.CustomerID.Int(), p.Amount.Int(), p.Date}
		if err := f.SetSheetRow(sheetPayments, cell, &row); err != nil {
			return errors.Wrapf(err, "writing payment %s", p.DocID)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return errors.Wrap(err, "saving workbook")
	}
	fmt.Fprintf(cli.out, "exported %d payments to %s\n", len(payments), path)
	return nil
}
