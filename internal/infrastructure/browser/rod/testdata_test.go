package rod

const (
	BasicHTML = `<!DOCTYPE html>
<html>
<head><title>Test Page</title></head>
<body>
	<h1>Hello World</h1>
</body>
</html>`

	FormHTML = `<!DOCTYPE html>
<html>
<body>
	<form id="testForm" onsubmit="event.preventDefault(); document.getElementById('done').textContent = 'Thanks for contacting us';">
		<input id="name" type="text" name="name" value="prefilled" required />
		<input id="disabled" type="text" name="disabled" disabled />
		<select name="country">
			<option value="">Select</option>
			<option value="US">United States</option>
			<option value="UK">United Kingdom</option>
		</select>
		<button type="submit" class="btn-primary">Submit</button>
	</form>
	<p id="done"></p>
	<a href="#a">Simple Form Demo</a>
	<a href="#b">Drag &amp; Drop Sliders</a>
	<div class="wrap"><span class="msg">Thanks for contacting us, we will get back to you shortly.</span></div>
</body>
</html>`

	SliderHTML = `<!DOCTYPE html>
<html>
<head><style>body { margin: 20px; } input[type=range] { width: 500px; display: block; margin: 20px 0; }</style></head>
<body>
	<div><input type="range" min="0" max="100" value="15" oninput="this.nextElementSibling.value = this.value"><output>15</output></div>
	<div><input type="range" min="0" max="100" value="15" oninput="this.nextElementSibling.value = this.value"><output>15</output></div>
	<div style="display:none"><input id="hidden" type="range" value="15"></div>
</body>
</html>`

	HiddenMessageHTML = `<!DOCTYPE html>
<html>
<body>
	<button id="reveal" onclick="document.querySelector('.success-msg').style.display = 'block'">Submit</button>
	<p class="success-msg" style="display:none">Thanks for contacting us, we will get back to you shortly.</p>
</body>
</html>`
)
