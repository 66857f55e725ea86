// Package projection turns a pricing model into render-ready pricing cards.
//
// Each product's items are ordered (flat prices, metered prices, then the
// remaining features by name). The first price item becomes the card's
// headline and the rest become display lines. Products without any price are
// shown as "Free".
//
// Products whose names carry a monthly/yearly qualifier, or that are billed
// yearly, are paired into one card with a monthly and an annual price.
//
// A product referencing a feature that is not in the model cannot be
// rendered. BuildTable reports it as a failure and renders the rest.
package projection
