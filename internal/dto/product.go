package dto

import "time"

// CreateProductRequest is the JSON body for POST /products.
// Name is validated in the service layer so that an empty and a missing
// name produce the same error.
type CreateProductRequest struct {
	Name string `json:"name"`
}

// CreateProductResponse is returned with 202 Accepted; the product is not
// listable until the finalize delay has elapsed.
type CreateProductResponse struct {
	ID      string `json:"id"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

type ProductResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type ListProductsResponse struct {
	Products []ProductResponse `json:"products"`
}

// ProductStatusResponse is returned by GET /products/status. Product is set
// only once the status is "completed".
type ProductStatusResponse struct {
	ID      string           `json:"id"`
	Status  string           `json:"status"`
	Product *ProductResponse `json:"product,omitempty"`
}
