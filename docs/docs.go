// Package docs registers the swagger document served at /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
	"schemes": {{ marshal .Schemes }},
	"swagger": "2.0",
	"info": {
		"description": "{{escape .Description}}",
		"title": "{{.Title}}",
		"contact": {},
		"version": "{{.Version}}"
	},
	"host": "{{.Host}}",
	"basePath": "{{.BasePath}}",
	"paths": {
		"/api/signup": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Auth"
				],
				"summary": "Register",
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/api/login": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Auth"
				],
				"summary": "Login",
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/api/refresh": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Auth"
				],
				"summary": "Refresh access token",
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/api/logout": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Auth"
				],
				"summary": "Logout",
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/api/forgot-password": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Auth"
				],
				"summary": "Request a password reset",
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/api/reset-password/{token}": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Auth"
				],
				"summary": "Reset password",
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/api/user/profile": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Profile"
				],
				"summary": "Get profile",
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			},
			"put": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Profile"
				],
				"summary": "Update profile",
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/api/user/change-password": {
			"put": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Profile"
				],
				"summary": "Change password",
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/api/cart": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Cart"
				],
				"summary": "Get cart",
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/api/cart/add": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Cart"
				],
				"summary": "Add or update a cart line",
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/api/cart/update-quantity": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Cart"
				],
				"summary": "Update line quantity",
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/api/cart/remove": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Cart"
				],
				"summary": "Remove a cart line",
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/api/cart/clear": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Cart"
				],
				"summary": "Clear cart",
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/api/wishlist": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Wishlist"
				],
				"summary": "List wishlist products",
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/api/wishlist/{productId}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Wishlist"
				],
				"summary": "Wishlist membership",
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/api/wishlist/toggle": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Wishlist"
				],
				"summary": "Toggle wishlist membership",
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/api/products": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Products"
				],
				"summary": "List products",
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			},
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Products"
				],
				"summary": "Create product",
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/api/products/{id}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Products"
				],
				"summary": "Product detail",
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			},
			"put": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Products"
				],
				"summary": "Update product",
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			},
			"delete": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Products"
				],
				"summary": "Delete product",
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/api/products/{id}/reviews": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Products"
				],
				"summary": "Add a review",
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/api/products/gallery-products": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Products"
				],
				"summary": "Products grouped by category",
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/api/products/new-arrivals": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Products"
				],
				"summary": "New arrivals",
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/api/products/new-arrivalsPage": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Products"
				],
				"summary": "New arrivals, paginated",
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/api/products/categories": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Products"
				],
				"summary": "Categories",
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/api/products/productsDetail": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Products"
				],
				"summary": "Product detail by query",
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/api/banner/active": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Banners"
				],
				"summary": "Active banners",
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/api/banner/banners": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Banners"
				],
				"summary": "All banners",
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/api/banner/admin": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Banners"
				],
				"summary": "Create banner",
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/api/banner/admin/{id}": {
			"put": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Banners"
				],
				"summary": "Update banner",
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			},
			"delete": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Banners"
				],
				"summary": "Delete banner",
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/api/banner/admin/{id}/toggle": {
			"patch": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Banners"
				],
				"summary": "Toggle banner visibility",
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/api/announcements": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Announcements"
				],
				"summary": "Announcements",
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			},
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Announcements"
				],
				"summary": "Create announcement",
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/api/announcements/{id}": {
			"delete": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Announcements"
				],
				"summary": "Delete announcement",
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/api/upload": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Upload"
				],
				"summary": "Upload an image",
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/api/users": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Users"
				],
				"summary": "List users",
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/api/payment/create-order": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Payment"
				],
				"summary": "Create a gateway order",
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/api/payment/verify-payment": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Payment"
				],
				"summary": "Verify payment and store the order",
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/api/payment/create-cod-order": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Payment"
				],
				"summary": "Place a cash-on-delivery order",
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/api/payment/orders": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Payment"
				],
				"summary": "Orders by email",
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/api/payment/all-orders": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Payment"
				],
				"summary": "All orders",
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/api/payment/first-order-status": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Payment"
				],
				"summary": "First order status",
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/api/payment/validate-promo": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Payment"
				],
				"summary": "Validate promo code",
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		}
	},
	"securityDefinitions": {
		"ApiKeyAuth": {
			"type": "apiKey",
			"name": "x-api-key",
			"in": "header"
		},
		"BearerAuth": {
			"description": "Type \"Bearer\" followed by a space and the access token.",
			"type": "apiKey",
			"name": "Authorization",
			"in": "header"
		}
	}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:		  "1.0",
	Host:			 "",
	BasePath:		 "/",
	Schemes:		  []string{},
	Title:			"Clothing Store API",
	Description:	  "Storefront backend: catalog, cart, wishlist, checkout and back-office.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:		"{{",
	RightDelim:	   "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
