// Package api exposes the item service over HTTP with gin.
package api
