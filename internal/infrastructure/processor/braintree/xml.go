package braintree

import (
	"encoding/xml"
	"strings"

	"checkout-server/internal/domain/processor"
)

type typedValue struct {
	Type  string `xml:"type,attr"`
	Value string `xml:",chardata"`
}

type clientTokenRequest struct {
	XMLName xml.Name   `xml:"client-token"`
	Version typedValue `xml:"version"`
}

type clientTokenResponse struct {
	XMLName xml.Name `xml:"client-token"`
	Value   string   `xml:"value"`
}

type transactionRequest struct {
	XMLName            xml.Name            `xml:"transaction"`
	Type               string              `xml:"type"`
	Amount             string              `xml:"amount"`
	PaymentMethodNonce string              `xml:"payment-method-nonce"`
	MerchantAccountID  string              `xml:"merchant-account-id,omitempty"`
	Options            *transactionOptions `xml:"options,omitempty"`
}

type transactionOptions struct {
	SubmitForSettlement *typedValue `xml:"submit-for-settlement,omitempty"`
}

type transactionResponse struct {
	XMLName               xml.Name `xml:"transaction"`
	ID                    string   `xml:"id"`
	Status                string   `xml:"status"`
	Amount                string   `xml:"amount"`
	CurrencyISOCode       string   `xml:"currency-iso-code"`
	MerchantAccountID     string   `xml:"merchant-account-id"`
	ProcessorResponseCode string   `xml:"processor-response-code"`
	ProcessorResponseText string   `xml:"processor-response-text"`
}

// apiErrorResponse 422で返る業務エラー
// errorsは任意の深さのフィールドグループを持つため汎用ノードで受ける
type apiErrorResponse struct {
	XMLName     xml.Name             `xml:"api-error-response"`
	Message     string               `xml:"message"`
	Errors      node                 `xml:"errors"`
	Transaction *transactionResponse `xml:"transaction"`
}

type node struct {
	XMLName xml.Name
	Content string `xml:",chardata"`
	Nodes   []node `xml:",any"`
}

func (n node) childText(name string) string {
	for _, c := range n.Nodes {
		if c.XMLName.Local == name {
			return strings.TrimSpace(c.Content)
		}
	}
	return ""
}

func (r *apiErrorResponse) toSaleResult() *processor.SaleResult {
	result := &processor.SaleResult{
		Success: false,
		Message: strings.TrimSpace(r.Message),
		Errors:  buildErrorNode("", r.Errors),
	}
	if r.Transaction != nil {
		result.TransactionID = r.Transaction.ID
		result.Status = r.Transaction.Status
	}
	return result
}

// buildErrorNode <errors>以下をErrorNodeの木に変換する
// <errors type="array">直下の<error>がそのグループのエラー、それ以外の子要素が下位グループ
func buildErrorNode(group string, n node) *processor.ErrorNode {
	out := processor.NewErrorNode(group)
	for _, child := range n.Nodes {
		if child.XMLName.Local == "errors" {
			for _, e := range child.Nodes {
				if e.XMLName.Local != "error" {
					continue
				}
				out.FieldErrors = append(out.FieldErrors, processor.FieldError{
					Attribute: e.childText("attribute"),
					Code:      e.childText("code"),
					Message:   e.childText("message"),
				})
			}
			continue
		}
		out.AddChild(buildErrorNode(child.XMLName.Local, child))
	}
	return out
}
