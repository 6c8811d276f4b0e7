package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"
	"time"

	config "school_fees_backend/configs"
	"school_fees_backend/database"
	"school_fees_backend/models"
	"school_fees_backend/notifications"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

type receiptLine struct {
	Label  string
	Amount string
}

// GenerateReceiptPDF renders, uploads and stores the PDF receipt for a
// verified payment, then mails it to the guardian. Meant to run in its own
// goroutine after the payment transaction commits; failures are logged, the
// payment itself is already safe.
func GenerateReceiptPDF(payments *PaymentService, paymentID uuid.UUID) {
	receipt, err := payments.GetReceipt(paymentID)
	if err != nil {
		log.Printf("🔥 Failed to load payment %s for receipt: %v", paymentID, err)
		return
	}
	if receipt.Payment.Status != models.PaymentStatusPaid {
		return
	}

	htmlData, err := generateReceiptHTML(receipt)
	if err != nil {
		log.Printf("🔥 Failed to generate receipt HTML: %v", err)
		return
	}

	pdfBytes, err := generatePDFFromHTML(htmlData)
	if err != nil {
		log.Printf("🔥 Failed to generate receipt PDF: %v", err)
		return
	}

	uploadURL, err := uploadReceiptToCloudinary(pdfBytes, receipt.Student.ID.String())
	if err != nil {
		log.Printf("🔥 Failed to upload receipt to Cloudinary: %v", err)
		return
	}

	err = database.DB.Model(&models.Payment{}).
		Where("id = ?", paymentID).
		Update("receipt_url", uploadURL).Error
	if err != nil {
		log.Printf("🔥 Failed to store receipt URL for payment %s: %v", paymentID, err)
		return
	}
	log.Printf("✅ Generated receipt for payment %s.", paymentID)

	if receipt.Student.GuardianEmail != nil {
		guardian := receipt.Student.FullName
		if receipt.Student.GuardianName != nil {
			guardian = *receipt.Student.GuardianName
		}
		body := fmt.Sprintf(
			"<h1>Payment Received</h1><p>We have received a payment of %.2f towards %s's school fees.</p><p><a href='%s'>Download receipt</a></p>",
			receipt.Payment.Amount, receipt.Student.FullName, uploadURL,
		)
		go notifications.SendEmail(guardian, *receipt.Student.GuardianEmail, "Fee Payment Receipt", body)
	}
}

func generateReceiptHTML(receipt *Receipt) (string, error) {
	tmpl, err := template.ParseFiles("templates/receipt.html")
	if err != nil {
		return "", err
	}

	lines := make([]receiptLine, 0, len(receipt.Allocations))
	for _, alloc := range receipt.Allocations {
		lines = append(lines, receiptLine{
			Label:  alloc.Label,
			Amount: fmt.Sprintf("%.2f", alloc.Amount),
		})
	}

	data := struct {
		StudentName   string
		LedgerNumber  string
		AcademicYear  string
		PaymentDate   string
		PaymentMethod string
		Total         string
		Lines         []receiptLine
	}{
		StudentName:   receipt.Student.FullName,
		LedgerNumber:  receipt.Account.LedgerNumber,
		AcademicYear:  receipt.Account.AcademicYear,
		PaymentDate:   receipt.Payment.PaymentDate.Format("January 2, 2006"),
		PaymentMethod: receipt.Payment.PaymentMethod,
		Total:         fmt.Sprintf("%.2f", receipt.Payment.Amount),
		Lines:         lines,
	}

	var renderedHTML bytes.Buffer
	if err := tmpl.Execute(&renderedHTML, data); err != nil {
		return "", err
	}
	return renderedHTML.String(), nil
}

func generatePDFFromHTML(htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}

func uploadReceiptToCloudinary(fileBytes []byte, studentID string) (string, error) {
	cld, err := cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	uploadParams := uploader.UploadParams{
		PublicID:     fmt.Sprintf("receipts/%s_%s", studentID, uuid.New().String()),
		Folder:       "school_fees_receipts",
		ResourceType: "raw",
	}

	uploadResult, err := cld.Upload.Upload(ctx, bytes.NewReader(fileBytes), uploadParams)
	if err != nil {
		return "", err
	}

	return uploadResult.SecureURL, nil
}
